package users

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

const Collection = "users"

type userDocument struct {
	ID            primitive.ObjectID   `bson:"_id"`
	Name          string               `bson:"name"`
	Email         string               `bson:"email"`
	Password      []byte               `bson:"password"`
	Avatar        string               `bson:"avatar"`
	Bio           string               `bson:"bio"`
	City          string               `bson:"city"`
	SavedVenues   []primitive.ObjectID `bson:"savedVenues"`
	FavoriteMoods []string             `bson:"favoriteMoods"`
	Age           *int                 `bson:"age,omitempty"`
	Gender        string               `bson:"gender"`
	Preferences   []string             `bson:"preferences"`
	CreatedAt     time.Time            `bson:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"`
}

func (d userDocument) toUser() *User {
	saved := make([]string, 0, len(d.SavedVenues))
	for _, id := range d.SavedVenues {
		saved = append(saved, id.Hex())
	}
	u := &User{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		Avatar:        d.Avatar,
		Bio:           d.Bio,
		City:          d.City,
		SavedVenues:   saved,
		FavoriteMoods: nonNil(d.FavoriteMoods),
		Age:           d.Age,
		Gender:        d.Gender,
		Preferences:   nonNil(d.Preferences),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	u.Password.hash = d.Password
	return u
}

type MongoRepository struct {
	users *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Store {
	return &MongoRepository{users: db.Collection(Collection)}
}

func (r *MongoRepository) Create(ctx context.Context, user *User) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	now := time.Now().UTC()
	doc := userDocument{
		ID:            primitive.NewObjectID(),
		Name:          strings.TrimSpace(user.Name),
		Email:         NormalizeEmail(user.Email),
		Password:      user.Password.hash,
		Avatar:        user.Avatar,
		Bio:           user.Bio,
		City:          user.City,
		SavedVenues:   []primitive.ObjectID{},
		FavoriteMoods: nonNil(user.FavoriteMoods),
		Age:           user.Age,
		Gender:        user.Gender,
		Preferences:   nonNil(user.Preferences),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	*user = *doc.toUser()
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toUser(), nil
}

func (r *MongoRepository) ListByIDs(ctx context.Context, ids []string) ([]User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []User{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]User, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toUser())
	}
	return out, nil
}

func (r *MongoRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.City != nil {
		set["city"] = *update.City
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.FavoriteMoods != nil {
		set["favoriteMoods"] = update.FavoriteMoods
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
}

func (r *MongoRepository) UpdatePassword(ctx context.Context, user *User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password":  user.Password.hash,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) AddSavedVenue(ctx context.Context, userID, venueID string) ([]string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	vid, err := primitive.ObjectIDFromHex(venueID)
	if err != nil {
		return nil, ErrNotFound
	}

	// the $ne guard makes the push a no-op for an already saved venue
	u, err := r.findOneAndUpdate(ctx,
		bson.M{"_id": uid, "savedVenues": bson.M{"$ne": vid}},
		bson.M{
			"$push": bson.M{"savedVenues": vid},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if errors.Is(err, ErrNotFound) {
		if _, getErr := r.GetByID(ctx, userID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadySaved
	}
	if err != nil {
		return nil, err
	}
	return u.SavedVenues, nil
}

func (r *MongoRepository) RemoveSavedVenue(ctx context.Context, userID, venueID string) ([]string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	vid, err := primitive.ObjectIDFromHex(venueID)
	if err != nil {
		// nothing stored under a malformed id
		u, err := r.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return u.SavedVenues, nil
	}

	u, err := r.findOneAndUpdate(ctx, bson.M{"_id": uid}, bson.M{
		"$pull": bson.M{"savedVenues": vid},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	return u.SavedVenues, nil
}

func (r *MongoRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	if err := r.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toUser(), nil
}

// EnsureMongoIndexes creates the unique email index.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
