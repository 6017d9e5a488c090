package support

import (
	"context"

	"villadesk/internal/app/uow"
)

// BeginUnit inherits the pipeline's unit of work or opens a writable
// managed one. Commit and rollback are no-ops for inherited units; the
// transaction middleware owns those.
func BeginUnit(ctx context.Context, factory uow.Factory) (uow.UnitOfWork, context.Context, func() error, func(), error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, func() error { return nil }, func() {}, nil
	}
	if factory == nil {
		return nil, ctx, nil, nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, ctx, nil, nil, err
	}
	execCtx := ctx
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		execCtx = injector.InjectContext(ctx)
	}
	execCtx = uow.ContextWithUnitOfWork(execCtx, unit)
	committed := false
	commit := func() error {
		if err := unit.Commit(execCtx); err != nil {
			return err
		}
		committed = true
		return nil
	}
	rollback := func() {
		if !committed {
			_ = unit.Rollback(execCtx)
		}
	}
	return unit, execCtx, commit, rollback, nil
}

// BeginReadOnlyUnit reuses a unit of work already in context or opens a
// read-only one. The cleanup func is nil when the unit was inherited.
func BeginReadOnlyUnit(ctx context.Context, factory uow.Factory) (uow.UnitOfWork, context.Context, func(), error) {
	unit, ok := uow.FromContext(ctx)
	if ok {
		return unit, ctx, nil, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	newUnit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := ctx
	if injector, ok := newUnit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		execCtx = injector.InjectContext(ctx)
	}
	execCtx = uow.ContextWithUnitOfWork(execCtx, newUnit)
	cleanup := func() {
		_ = newUnit.Rollback(execCtx)
	}
	return newUnit, execCtx, cleanup, nil
}
