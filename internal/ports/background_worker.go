package ports

import "context"

// BackgroundWorker: фоновый компонент, живущий вместе с приложением.
type BackgroundWorker interface {
	Run(ctx context.Context) error
	Close() error
}
