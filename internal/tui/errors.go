// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/service"
)

// ErrUserQuit is returned by [TUI.Run] when the user leaves with ctrl+c.
var ErrUserQuit = errors.New("вышел из программы")

// humanizeError turns adapter and session errors into short messages for the
// status and error overlay lines.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrInvalidCredentials), errors.Is(err, adapter.ErrUnauthorized):
		return "Неверный email или пароль"
	case errors.Is(err, adapter.ErrEmailExists), errors.Is(err, adapter.ErrConflict):
		return "Пользователь с таким email уже зарегистрирован"
	case errors.Is(err, adapter.ErrBadRequest):
		return "Сервер отклонил данные: " + err.Error()
	case errors.Is(err, service.ErrNotSignedIn):
		return "Вход не выполнен"
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
