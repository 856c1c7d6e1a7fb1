package venues

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"diljourney/internal/domain/moods"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "venues"

type venueDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Moods         []string           `bson:"moods"`
	MoodScores    map[string]float64 `bson:"moodScores"`
	Category      string             `bson:"category"`
	Address       string             `bson:"address"`
	City          string             `bson:"city"`
	Location      Point              `bson:"location"`
	Images        []string           `bson:"images"`
	Ambiance      Ambiance           `bson:"ambiance"`
	ActivityGuide string             `bson:"activityGuide"`
	SeekingGuide  string             `bson:"seekingGuide"`
	PriceRange    string             `bson:"priceRange"`
	Cuisine       string             `bson:"cuisine"`
	OpeningHours  string             `bson:"openingHours"`
	AverageRating float64            `bson:"averageRating"`
	TotalReviews  int                `bson:"totalReviews"`
	IsActive      bool               `bson:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d venueDocument) toVenue() Venue {
	return Venue{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Moods:         d.Moods,
		MoodScores:    d.MoodScores,
		Category:      d.Category,
		Address:       d.Address,
		City:          d.City,
		Location:      d.Location,
		Images:        d.Images,
		Ambiance:      d.Ambiance,
		ActivityGuide: d.ActivityGuide,
		SeekingGuide:  d.SeekingGuide,
		PriceRange:    d.PriceRange,
		Cuisine:       d.Cuisine,
		OpeningHours:  d.OpeningHours,
		AverageRating: d.AverageRating,
		TotalReviews:  d.TotalReviews,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type MongoRepository struct {
	venues *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Store {
	return &MongoRepository{venues: db.Collection(Collection)}
}

func (r *MongoRepository) Create(ctx context.Context, venue *Venue) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	venue.ApplyDefaults()
	now := time.Now().UTC()
	doc := venueDocument{
		ID:            primitive.NewObjectID(),
		Name:          strings.TrimSpace(venue.Name),
		Description:   venue.Description,
		Moods:         venue.Moods,
		MoodScores:    venue.MoodScores,
		Category:      venue.Category,
		Address:       venue.Address,
		City:          venue.City,
		Location:      venue.Location,
		Images:        venue.Images,
		Ambiance:      venue.Ambiance,
		ActivityGuide: venue.ActivityGuide,
		SeekingGuide:  venue.SeekingGuide,
		PriceRange:    venue.PriceRange,
		Cuisine:       venue.Cuisine,
		OpeningHours:  venue.OpeningHours,
		IsActive:      venue.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := r.venues.InsertOne(ctx, doc); err != nil {
		return err
	}

	*venue = doc.toVenue()
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrVenueNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var doc venueDocument
	if err := r.venues.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	v := doc.toVenue()
	return &v, nil
}

func (r *MongoRepository) ListByIDs(ctx context.Context, ids []string) ([]Venue, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []Venue{}, nil
	}

	found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}, "isActive": true}, nil)
	if err != nil {
		return nil, err
	}
	return orderByIDs(found, ids), nil
}

func (r *MongoRepository) List(ctx context.Context, filter Filter) ([]Venue, int, error) {
	query := bson.M{"isActive": true}
	if filter.Mood != "" {
		query["moods"] = filter.Mood
	}
	if filter.City != "" {
		query["city"] = cityPattern(filter.City)
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.PriceRange != "" {
		query["priceRange"] = filter.PriceRange
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	total, err := r.venues.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	vs, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return vs, int(total), nil
}

func (r *MongoRepository) ByMood(ctx context.Context, mood, city string, limit int) ([]Venue, error) {
	scoreField := "moodScores." + mood
	query := bson.M{
		"isActive": true,
		"moods":    mood,
		scoreField: bson.M{"$gte": moods.Threshold},
	}
	if city != "" {
		query["city"] = cityPattern(city)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: scoreField, Value: -1}, {Key: "averageRating", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, query, opts)
}

func (r *MongoRepository) Cities(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	raw, err := r.venues.Distinct(ctx, "city", bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(raw))
	for _, c := range raw {
		if s, ok := c.(string); ok {
			cities = append(cities, s)
		}
	}
	sort.Strings(cities)
	return cities, nil
}

func (r *MongoRepository) SetRating(ctx context.Context, id string, average float64, total int) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"averageRating": average,
		"totalReviews":  total,
		"updatedAt":     time.Now().UTC(),
	}})
}

func (r *MongoRepository) AddImage(ctx context.Context, id, url string) error {
	return r.updateOne(ctx, id, bson.M{
		"$push": bson.M{"images": url},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *MongoRepository) RemoveImage(ctx context.Context, id, url string) error {
	return r.updateOne(ctx, id, bson.M{
		"$pull": bson.M{"images": url},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *MongoRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.venues.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrVenueNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.venues.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func (r *MongoRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.venues.Find(ctx, query, opts)
	} else {
		cursor, err = r.venues.Find(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []Venue{}
	for cursor.Next(ctx) {
		var doc venueDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toVenue())
	}
	return out, cursor.Err()
}

// EnsureMongoIndexes creates the mood/city and geospatial indexes.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Collection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "moods", Value: 1}, {Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	})
	return err
}

func cityPattern(city string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(city), Options: "i"}
}

func orderByIDs(vs []Venue, ids []string) []Venue {
	byID := make(map[string]Venue, len(vs))
	for _, v := range vs {
		byID[v.ID] = v
	}
	out := make([]Venue, 0, len(vs))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
			delete(byID, id)
		}
	}
	return out
}
