package service

import (
	"context"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/store"
)

type ClientServices struct {
	Session ClientSession
	AppInfo ClientAppInfoService
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, watcher adapter.ProfileWatcher, logger *logger.Logger) *ClientServices {
	var sessions store.SessionStore
	if localStore != nil {
		sessions = localStore.Sessions
	}

	return &ClientServices{
		Session: NewClientSession(serverAdapter, sessions, watcher, logger),
		AppInfo: &clientAppInfoService{adapter: serverAdapter},
	}
}

type clientAppInfoService struct {
	adapter adapter.ServerAdapter
}

func (s *clientAppInfoService) ServerVersion(ctx context.Context) (string, error) {
	return s.adapter.Version(ctx)
}
