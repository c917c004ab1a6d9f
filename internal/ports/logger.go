package ports

import "context"

// Logger: минимальный контракт логгера для внешних слоёв.
// Реализация сама достаёт из ctx метаданные запроса (request_id, trace_id).
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any) // Debugf: подробности для отладки.
	Infof(ctx context.Context, format string, args ...any)  // Infof: информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf: предупреждения.
	Errorf(ctx context.Context, format string, args ...any) // Errorf: ошибки.
}
