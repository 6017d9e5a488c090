package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type VillaRepository struct {
	col *mongo.Collection
}

func NewVillaRepository(db *mongo.Database) *VillaRepository {
	col := db.Collection("villas")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "order", Value: 1}},
	})
	return &VillaRepository{col: col}
}

func (r *VillaRepository) ByID(ctx context.Context, id domainvilla.VillaID) (*domainvilla.Villa, error) {
	var doc villaDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainvilla.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *VillaRepository) ByName(ctx context.Context, name string) (*domainvilla.Villa, error) {
	var doc villaDocument
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainvilla.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *VillaRepository) Save(ctx context.Context, v *domainvilla.Villa) error {
	doc := newVillaDocument(v)
	filter := bson.M{"_id": doc.ID, "version": v.Version}
	doc.Version = v.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainvilla.ErrNameTaken
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	v.Version = doc.Version
	return nil
}

func (r *VillaRepository) Delete(ctx context.Context, id domainvilla.VillaID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainvilla.ErrNotFound
	}
	return nil
}

func (r *VillaRepository) List(ctx context.Context, filter domainvilla.ListFilter) ([]*domainvilla.Villa, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainvilla.Villa
	for cursor.Next(ctx) {
		var doc villaDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

// ShiftOrders adds delta to every assigned order in [from, to); to == 0
// means unbounded. Runs as one UpdateMany so reorders stay atomic inside
// the surrounding transaction.
func (r *VillaRepository) ShiftOrders(ctx context.Context, from, to, delta int) error {
	cond := bson.M{"$gte": from}
	query := bson.M{"order": cond}
	if to > 0 {
		query = bson.M{"$and": []bson.M{
			{"order": bson.M{"$gte": from}},
			{"order": bson.M{"$lt": to}},
		}}
	}
	_, err := r.col.UpdateMany(ctx, query, bson.M{"$inc": bson.M{"order": delta}})
	return err
}

type villaDocument struct {
	ID           string         `bson:"_id"`
	Name         string         `bson:"name"`
	Location     string         `bson:"location"`
	MaxGuests    int            `bson:"max_guests"`
	Status       string         `bson:"status"`
	Description  string         `bson:"description"`
	ImageURL     string         `bson:"image_url"`
	Amenities    []string       `bson:"amenities"`
	Order        int            `bson:"order"`
	BasePrice    int64          `bson:"base_price"`
	WeekendPrice *int64         `bson:"weekend_price,omitempty"`
	WeekendDays  []int          `bson:"weekend_days"`
	SpecialRules []ruleDocument `bson:"special_rules"`
	CreatedAt    int64          `bson:"created_at"`
	UpdatedAt    int64          `bson:"updated_at"`
	Version      int64          `bson:"version"`
}

type ruleDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
	Price int64 `bson:"price"`
}

func newVillaDocument(v *domainvilla.Villa) villaDocument {
	doc := villaDocument{
		ID:          string(v.ID),
		Name:        v.Name,
		Location:    v.Location,
		MaxGuests:   v.MaxGuests,
		Status:      string(v.Status),
		Description: v.Description,
		ImageURL:    v.ImageURL,
		Amenities:   v.Amenities,
		Order:       v.Order,
		BasePrice:   v.Pricing.BasePrice.Amount,
		WeekendDays: v.Pricing.WeekendDays,
		CreatedAt:   v.CreatedAt.UnixMilli(),
		UpdatedAt:   v.UpdatedAt.UnixMilli(),
		Version:     v.Version,
	}
	if v.Pricing.WeekendPrice != nil {
		amount := v.Pricing.WeekendPrice.Amount
		doc.WeekendPrice = &amount
	}
	for _, rule := range v.Pricing.SpecialRules {
		doc.SpecialRules = append(doc.SpecialRules, ruleDocument{
			Start: rule.Start.UnixMilli(),
			End:   rule.End.UnixMilli(),
			Price: rule.Price.Amount,
		})
	}
	return doc
}

func (d villaDocument) toAggregate() *domainvilla.Villa {
	pricing := domainvilla.PricingConfig{
		BasePrice:   money.FromPaise(d.BasePrice),
		WeekendDays: d.WeekendDays,
	}
	if d.WeekendPrice != nil {
		price := money.FromPaise(*d.WeekendPrice)
		pricing.WeekendPrice = &price
	}
	for _, rule := range d.SpecialRules {
		pricing.SpecialRules = append(pricing.SpecialRules, domainvilla.SpecialRule{
			Start: timestampToTime(rule.Start),
			End:   timestampToTime(rule.End),
			Price: money.FromPaise(rule.Price),
		})
	}
	return &domainvilla.Villa{
		ID:          domainvilla.VillaID(d.ID),
		Name:        d.Name,
		Location:    d.Location,
		MaxGuests:   d.MaxGuests,
		Status:      domainvilla.Status(d.Status),
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Amenities:   d.Amenities,
		Order:       d.Order,
		Pricing:     pricing,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
