package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/drakehanguyen/devpockit/internal/events"
)

// NotificationService records account activity emitted by domain events.
// Delivery is a structured-log stub; a mail or webhook sender would
// plug in here.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserLoggedIn, n.handleUserLoggedIn)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleUserDeleted)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserLoggedIn(_ context.Context, event events.Event) error {
	n.logger.Info("UserLoggedIn", zap.Int64("user_id", event.UserID))
	return nil
}

func (n *NotificationService) handleUserDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("UserDeleted", zap.Int64("user_id", event.UserID))
	return nil
}
