package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "reviews"

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	User      primitive.ObjectID `bson:"user"`
	Venue     primitive.ObjectID `bson:"venue"`
	Mood      string             `bson:"mood"`
	Rating    int                `bson:"rating"`
	MoodMatch bool               `bson:"moodMatch"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	VisitDate time.Time          `bson:"visitDate"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d reviewDocument) toReview() Review {
	return Review{
		ID:        d.ID.Hex(),
		UserID:    d.User.Hex(),
		VenueID:   d.Venue.Hex(),
		Mood:      d.Mood,
		Rating:    d.Rating,
		MoodMatch: d.MoodMatch,
		Title:     d.Title,
		Body:      d.Body,
		VisitDate: d.VisitDate,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoRepository struct {
	reviews *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Store {
	return &MongoRepository{reviews: db.Collection(Collection)}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (r *MongoRepository) Create(ctx context.Context, review *Review) error {
	userID, err := primitive.ObjectIDFromHex(review.UserID)
	if err != nil {
		return ErrNotFound
	}
	venueID, err := primitive.ObjectIDFromHex(review.VenueID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	review.prepare(time.Now().UTC())
	doc := reviewDocument{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Venue:     venueID,
		Mood:      review.Mood,
		Rating:    review.Rating,
		MoodMatch: review.MoodMatch,
		Title:     review.Title,
		Body:      review.Body,
		VisitDate: review.VisitDate,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}

	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		return err
	}
	review.ID = doc.ID.Hex()
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var doc reviewDocument
	if err := r.reviews.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rev := doc.toReview()
	return &rev, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, update Update) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.MoodMatch != nil {
		set["moodMatch"] = *update.MoodMatch
	}
	if update.Title != nil {
		set["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Body != nil {
		set["body"] = *update.Body
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc reviewDocument
	err = r.reviews.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rev := doc.toReview()
	return &rev, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.reviews.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) HasReview(ctx context.Context, userID, venueID string) (bool, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}
	vid, err := primitive.ObjectIDFromHex(venueID)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	n, err := r.reviews.CountDocuments(ctx, bson.M{"user": uid, "venue": vid}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *MongoRepository) ListByVenue(ctx context.Context, venueID string, filter ListFilter) ([]Review, int, error) {
	vid, err := primitive.ObjectIDFromHex(venueID)
	if err != nil {
		return []Review{}, 0, nil
	}

	query := bson.M{"venue": vid}
	if filter.Mood != "" {
		query["mood"] = filter.Mood
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	total, err := r.reviews.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(newestFirst).SetSkip(int64(filter.Offset)).SetLimit(int64(filter.Limit))
	out, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return out, int(total), nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []Review{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.find(ctx, bson.M{"user": uid}, options.Find().SetSort(newestFirst))
}

func (r *MongoRepository) RatingStats(ctx context.Context, venueID string) (int, float64, error) {
	vid, err := primitive.ObjectIDFromHex(venueID)
	if err != nil {
		return 0, 0, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"venue": vid}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$venue",
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var stats []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err := cursor.All(ctx, &stats); err != nil {
		return 0, 0, err
	}
	if len(stats) == 0 {
		return 0, 0, nil
	}
	return stats[0].Count, stats[0].Avg, nil
}

func (r *MongoRepository) MoodSummary(ctx context.Context, venueID string) ([]MoodSummary, error) {
	vid, err := primitive.ObjectIDFromHex(venueID)
	if err != nil {
		return []MoodSummary{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"venue": vid}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$mood",
			"count":          bson.M{"$sum": 1},
			"avgRating":      bson.M{"$avg": "$rating"},
			"moodMatchCount": bson.M{"$sum": bson.M{"$cond": bson.A{"$moodMatch", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Mood           string  `bson:"_id"`
		Count          int     `bson:"count"`
		AvgRating      float64 `bson:"avgRating"`
		MoodMatchCount int     `bson:"moodMatchCount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]MoodSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, MoodSummary(row))
	}
	return out, nil
}

func (r *MongoRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]Review, error) {
	cursor, err := r.reviews.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []Review{}
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toReview())
	}
	return out, cursor.Err()
}

// EnsureMongoIndexes enforces one review per (user, venue) and backs the
// per-venue listing.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Collection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "venue", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "venue", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}
