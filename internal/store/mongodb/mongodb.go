// Package mongodb stores journal entries and drafts in MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/store"
)

const (
	EntriesCollection = "entries"
	DraftsCollection  = "drafts"
)

// entryDoc is the stored form of models.JournalEntry.
type entryDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	UserID         string             `bson:"user_id"`
	Title          string             `bson:"title"`
	Content        string             `bson:"content"`
	Mood           string             `bson:"mood"`
	MoodScore      int                `bson:"mood_score"`
	MoodImageQuery string             `bson:"mood_image_query"`
	CollectionID   string             `bson:"collection_id,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d entryDoc) model() models.JournalEntry {
	return models.JournalEntry{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		Title:          d.Title,
		Content:        d.Content,
		Mood:           d.Mood,
		MoodScore:      d.MoodScore,
		MoodImageQuery: d.MoodImageQuery,
		CollectionID:   d.CollectionID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type Store struct {
	entries *mongo.Collection
	drafts  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		entries: db.Collection(EntriesCollection),
		drafts:  db.Collection(DraftsCollection),
	}
}

// EnsureIndexes creates the indexes the entry listings rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_created"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "collection_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_collection_created"),
		},
	}
	for _, m := range indexes {
		if _, err := s.entries.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// entryKey builds the owner-scoped lookup for one entry. An id that is not
// an ObjectID can never match and is reported as not found.
func entryKey(userID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}

// entryFilter translates an EntryFilter into a query document.
func entryFilter(userID string, f models.EntryFilter) bson.M {
	filter := bson.M{"user_id": userID}
	switch {
	case f.UnorganizedOnly:
		filter["collection_id"] = bson.M{"$exists": false}
	case f.CollectionID != "":
		filter["collection_id"] = f.CollectionID
	}
	if f.Mood != "" {
		filter["mood"] = f.Mood
	}
	return filter
}

func (s *Store) CreateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	doc := entryDoc{
		ID:             primitive.NewObjectID(),
		UserID:         e.UserID,
		Title:          e.Title,
		Content:        e.Content,
		Mood:           e.Mood,
		MoodScore:      e.MoodScore,
		MoodImageQuery: e.MoodImageQuery,
		CollectionID:   e.CollectionID,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if _, err := s.entries.InsertOne(ctx, doc); err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to insert entry: %w", err)
	}
	return doc.model(), nil
}

func (s *Store) GetEntry(ctx context.Context, userID, id string) (models.JournalEntry, error) {
	key, err := entryKey(userID, id)
	if err != nil {
		return models.JournalEntry{}, err
	}
	var doc entryDoc
	if err := s.entries.FindOne(ctx, key).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.JournalEntry{}, store.ErrNotFound
		}
		return models.JournalEntry{}, fmt.Errorf("failed to load entry: %w", err)
	}
	return doc.model(), nil
}

func (s *Store) UpdateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	key, err := entryKey(e.UserID, e.ID)
	if err != nil {
		return models.JournalEntry{}, err
	}

	set := bson.M{
		"title":            e.Title,
		"content":          e.Content,
		"mood":             e.Mood,
		"mood_score":       e.MoodScore,
		"mood_image_query": e.MoodImageQuery,
		"updated_at":       e.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if e.CollectionID == "" {
		update["$unset"] = bson.M{"collection_id": ""}
	} else {
		set["collection_id"] = e.CollectionID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc entryDoc
	if err := s.entries.FindOneAndUpdate(ctx, key, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.JournalEntry{}, store.ErrNotFound
		}
		return models.JournalEntry{}, fmt.Errorf("failed to update entry: %w", err)
	}
	return doc.model(), nil
}

func (s *Store) DeleteEntry(ctx context.Context, userID, id string) error {
	key, err := entryKey(userID, id)
	if err != nil {
		return err
	}
	res, err := s.entries.DeleteOne(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListEntries(ctx context.Context, userID string, f models.EntryFilter) ([]models.JournalEntry, int64, error) {
	filter := entryFilter(userID, f)

	total, err := s.entries.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		findOptions.SetLimit(f.Limit)
	}
	if f.Skip > 0 {
		findOptions.SetSkip(f.Skip)
	}

	cursor, err := s.entries.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []entryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode entries: %w", err)
	}
	out := make([]models.JournalEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, total, nil
}

func (s *Store) UnsetCollection(ctx context.Context, userID, collectionID string) (int64, error) {
	res, err := s.entries.UpdateMany(ctx,
		bson.M{"user_id": userID, "collection_id": collectionID},
		bson.M{"$unset": bson.M{"collection_id": ""}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to detach entries: %w", err)
	}
	return res.ModifiedCount, nil
}

func (s *Store) GetDraft(ctx context.Context, userID string) (models.Draft, error) {
	var d models.Draft
	if err := s.drafts.FindOne(ctx, bson.M{"_id": userID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Draft{}, store.ErrNotFound
		}
		return models.Draft{}, fmt.Errorf("failed to load draft: %w", err)
	}
	return d, nil
}

// SaveDraft upserts the draft document keyed by user id.
func (s *Store) SaveDraft(ctx context.Context, d models.Draft) error {
	_, err := s.drafts.UpdateOne(ctx,
		bson.M{"_id": d.UserID},
		bson.M{"$set": bson.M{
			"title":      d.Title,
			"content":    d.Content,
			"mood":       d.Mood,
			"updated_at": d.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *Store) DeleteDraft(ctx context.Context, userID string) error {
	if _, err := s.drafts.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
