package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	domainvilla "villadesk/internal/domain/villa"
)

// Factory wires Mongo transactions into the generic UnitOfWork
// interface. The booking save pipeline depends on the availability
// check and the insert sharing one session.
type Factory struct {
	DB *mongo.Database

	VillaRepo      domainvilla.Repository
	BookingRepo    domainbooking.Repository
	SpecialDayRepo domainvilla.SpecialDayRepository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:          f.DB,
		session:     session,
		villas:      f.VillaRepo,
		bookings:    f.BookingRepo,
		specialDays: f.SpecialDayRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	villas      domainvilla.Repository
	bookings    domainbooking.Repository
	specialDays domainvilla.SpecialDayRepository
}

func (u *Unit) Villas() domainvilla.Repository {
	return u.villas
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) SpecialDays() domainvilla.SpecialDayRepository {
	return u.specialDays
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures the Mongo session is available in context for
// downstream repositories.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
