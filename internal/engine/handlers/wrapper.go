package handlers

import (
	"encoding/json"
	"fmt"

	"trickntreat-server/pkg/api"
)

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) error

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (START_GAME, PAUSE)
type EmptyHandlerFunc func(ctx Context) error

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя Unmarshal и Validate.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) error {
		var payload T

		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("invalid payload format: %w", err)
		}

		// Автоматическая валидация, если структура T реализует Validator
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}

		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) error {
		return handler(ctx)
	}
}
