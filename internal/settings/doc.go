// Package settings owns the user settings document: its defaults, the deep
// merge of partial updates and the validation that guards every write.
//
// Merge is pure. Apply runs merge, strict decoding and validation, so a
// rejected patch never touches the stored document.
package settings
