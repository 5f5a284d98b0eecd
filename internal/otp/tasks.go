package otp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/naeemhossain01/flexfume-backend/internal/obs"
	"github.com/naeemhossain01/flexfume-backend/internal/sms"
)

// TaskTypeSendSMS is the asynq task kind for outbound OTP messages.
const TaskTypeSendSMS = "sms:send"

type sendSMSPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewSendTask builds the delivery task for a generated code.
func NewSendTask(phone, message string) (*asynq.Task, error) {
	payload, err := json.Marshal(sendSMSPayload{Phone: phone, Message: message})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendSMS, payload, asynq.MaxRetry(3)), nil
}

// TaskHandler processes queued deliveries on the worker.
type TaskHandler struct {
	Sender sms.Sender
	Logger *zerolog.Logger
}

func (h TaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload sendSMSPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal sms payload: %w", asynq.SkipRetry)
	}
	if err := h.Sender.Send(ctx, payload.Phone, payload.Message); err != nil {
		if h.Logger != nil {
			h.Logger.Error().Err(err).Str("phone", payload.Phone).Msg("sms delivery failed")
		}
		if obs.SmsDeliveryTotal != nil {
			obs.SmsDeliveryTotal.WithLabelValues("failed").Inc()
		}
		return err
	}
	if h.Logger != nil {
		h.Logger.Info().Str("phone", payload.Phone).Msg("sms delivered")
	}
	if obs.SmsDeliveryTotal != nil {
		obs.SmsDeliveryTotal.WithLabelValues("delivered").Inc()
	}
	return nil
}
