package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("bookings")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "villa_id", Value: 1}, {Key: "check_in", Value: 1}},
	})
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "check_in", Value: -1}},
	})
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id domainbooking.BookingID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainbooking.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, filter domainbooking.ListFilter) ([]*domainbooking.Booking, error) {
	query := bson.M{}
	if filter.VillaID != "" {
		query["villa_id"] = string(filter.VillaID)
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	checkIn := bson.M{}
	if !filter.CheckInAfter.IsZero() {
		checkIn["$gte"] = filter.CheckInAfter.UnixMilli()
	}
	if !filter.CheckInBefore.IsZero() {
		checkIn["$lte"] = filter.CheckInBefore.UnixMilli()
	}
	if len(checkIn) > 0 {
		query["check_in"] = checkIn
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := regexQuoteMeta(s)
		query["$or"] = []bson.M{
			{"client_name": bson.M{"$regex": pattern, "$options": "i"}},
			{"client_phone": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "check_in", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

// FindOverlapping selects bookings whose half-open range intersects dr:
// check_in < dr.CheckOut AND check_out > dr.CheckIn.
func (r *BookingRepository) FindOverlapping(ctx context.Context, villaID domainvilla.VillaID, dr daterange.DateRange, excludeID domainbooking.BookingID) ([]domainbooking.Summary, error) {
	query := bson.M{
		"villa_id":  string(villaID),
		"check_in":  bson.M{"$lt": dr.CheckOut.UnixMilli()},
		"check_out": bson.M{"$gt": dr.CheckIn.UnixMilli()},
	}
	if excludeID != "" {
		query["_id"] = bson.M{"$ne": string(excludeID)}
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []domainbooking.Summary
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toSummary())
	}
	return out, cursor.Err()
}

func (r *BookingRepository) InRange(ctx context.Context, start, end time.Time, villaID domainvilla.VillaID) ([]*domainbooking.Booking, error) {
	query := bson.M{
		"check_in":  bson.M{"$lte": end.UnixMilli()},
		"check_out": bson.M{"$gte": start.UnixMilli()},
	}
	if villaID != "" {
		query["villa_id"] = string(villaID)
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *BookingRepository) CountByVilla(ctx context.Context, villaID domainvilla.VillaID) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"villa_id": string(villaID)})
	return int(n), err
}

type bookingDocument struct {
	ID             string `bson:"_id"`
	VillaID        string `bson:"villa_id"`
	ClientName     string `bson:"client_name"`
	ClientPhone    string `bson:"client_phone"`
	ClientEmail    string `bson:"client_email"`
	CheckIn        int64  `bson:"check_in"`
	CheckOut       int64  `bson:"check_out"`
	Status         string `bson:"status"`
	Guests         int    `bson:"guests"`
	PaymentStatus  string `bson:"payment_status"`
	PaymentMethod  string `bson:"payment_method,omitempty"`
	Source         string `bson:"source"`
	Notes          string `bson:"notes"`
	TotalPayment   int64  `bson:"total_payment"`
	AdvancePayment int64  `bson:"advance_payment"`
	OverrideTotal  *int64 `bson:"override_total,omitempty"`
	CreatedBy      string `bson:"created_by"`
	CreatedAt      int64  `bson:"created_at"`
	UpdatedAt      int64  `bson:"updated_at"`
	Version        int64  `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	doc := bookingDocument{
		ID:             string(b.ID),
		VillaID:        string(b.VillaID),
		ClientName:     b.ClientName,
		ClientPhone:    b.ClientPhone,
		ClientEmail:    b.ClientEmail,
		CheckIn:        b.Range.CheckIn.UnixMilli(),
		CheckOut:       b.Range.CheckOut.UnixMilli(),
		Status:         string(b.Status),
		Guests:         b.Guests,
		PaymentStatus:  string(b.PaymentStatus),
		PaymentMethod:  string(b.PaymentMethod),
		Source:         string(b.Source),
		Notes:          b.Notes,
		TotalPayment:   b.TotalPayment.Amount,
		AdvancePayment: b.AdvancePayment.Amount,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt.UnixMilli(),
		UpdatedAt:      b.UpdatedAt.UnixMilli(),
		Version:        b.Version,
	}
	if b.OverrideTotal != nil {
		amount := b.OverrideTotal.Amount
		doc.OverrideTotal = &amount
	}
	return doc
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	b := &domainbooking.Booking{
		ID:          domainbooking.BookingID(d.ID),
		VillaID:     domainvilla.VillaID(d.VillaID),
		ClientName:  d.ClientName,
		ClientPhone: d.ClientPhone,
		ClientEmail: d.ClientEmail,
		Range: daterange.DateRange{
			CheckIn:  timestampToTime(d.CheckIn),
			CheckOut: timestampToTime(d.CheckOut),
		},
		Status:         domainbooking.Status(d.Status),
		Guests:         d.Guests,
		PaymentStatus:  domainbooking.PaymentStatus(d.PaymentStatus),
		PaymentMethod:  domainbooking.PaymentMethod(d.PaymentMethod),
		Source:         domainbooking.Source(d.Source),
		Notes:          d.Notes,
		TotalPayment:   money.FromPaise(d.TotalPayment),
		AdvancePayment: money.FromPaise(d.AdvancePayment),
		CreatedBy:      d.CreatedBy,
		CreatedAt:      timestampToTime(d.CreatedAt),
		UpdatedAt:      timestampToTime(d.UpdatedAt),
		Version:        d.Version,
	}
	if d.OverrideTotal != nil {
		amount := money.FromPaise(*d.OverrideTotal)
		b.OverrideTotal = &amount
	}
	return b
}

func (d bookingDocument) toSummary() domainbooking.Summary {
	return domainbooking.Summary{
		ID:         domainbooking.BookingID(d.ID),
		VillaID:    domainvilla.VillaID(d.VillaID),
		ClientName: d.ClientName,
		CheckIn:    timestampToTime(d.CheckIn),
		CheckOut:   timestampToTime(d.CheckOut),
		Status:     domainbooking.Status(d.Status),
	}
}

func regexQuoteMeta(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
