package employee

import "context"

type QueryRepository interface {
	GetByCPF(ctx context.Context, cpf string) (*Employee, error)
}
