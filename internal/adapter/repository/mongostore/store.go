// Package mongostore implements the video, corpus and analysis repositories on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	repo "github.com/johnquangdev/comment-analytics/internal/domain/repositories"
)

// Store is a MongoDB-backed document store
type Store struct {
	db *mongo.Database
}

// NewStore wraps a database handle
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

var (
	_ repo.VideoRepository    = (*Store)(nil)
	_ repo.CorpusRepository   = (*Store)(nil)
	_ repo.AnalysisRepository = (*Store)(nil)
)

// EnsureIndexes creates the lookup indexes used by the repositories
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		CollectionVideos:   {Keys: bson.D{{Key: "channel_id", Value: 1}, {Key: "publish_time", Value: -1}}},
		CollectionComments: {Keys: bson.D{{Key: "video_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		CollectionAnalyses: {Keys: bson.D{{Key: "video_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		CollectionChannels: {Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	for coll, model := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

// GetVideo retrieves a video by ID
func (s *Store) GetVideo(ctx context.Context, videoID string) (*entities.Video, error) {
	var doc videoDoc
	err := s.db.Collection(CollectionVideos).FindOne(ctx, bson.M{"_id": videoID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// GetChannel retrieves a channel by ID
func (s *Store) GetChannel(ctx context.Context, channelID string) (*entities.Channel, error) {
	var doc channelDoc
	err := s.db.Collection(CollectionChannels).FindOne(ctx, bson.M{"_id": channelID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// GetVideosByChannel lists the videos of a channel, newest first
func (s *Store) GetVideosByChannel(ctx context.Context, channelID string) ([]*entities.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publish_time", Value: -1}})
	return s.findVideos(ctx, bson.M{"channel_id": channelID}, opts)
}

// GetVideosByIDs retrieves videos by ID
func (s *Store) GetVideosByIDs(ctx context.Context, videoIDs []string) ([]*entities.Video, error) {
	if len(videoIDs) == 0 {
		return []*entities.Video{}, nil
	}
	return s.findVideos(ctx, bson.M{"_id": bson.M{"$in": videoIDs}})
}

func (s *Store) findVideos(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entities.Video, error) {
	cursor, err := s.db.Collection(CollectionVideos).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []videoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	videos := make([]*entities.Video, 0, len(docs))
	for _, d := range docs {
		videos = append(videos, d.toEntity())
	}
	return videos, nil
}

// GetChannelsByOwner lists channels of an owner
func (s *Store) GetChannelsByOwner(ctx context.Context, ownerID string) ([]*entities.Channel, error) {
	cursor, err := s.db.Collection(CollectionChannels).Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	var docs []channelDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	channels := make([]*entities.Channel, 0, len(docs))
	for _, d := range docs {
		channels = append(channels, d.toEntity())
	}
	return channels, nil
}

// GetCorpus retrieves the comments of a video
func (s *Store) GetCorpus(ctx context.Context, videoID string) (*entities.CommentCorpus, error) {
	var doc commentsDoc
	err := s.db.Collection(CollectionComments).FindOne(ctx, bson.M{"video_id": videoID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// GetAnalysis retrieves the analysis of a video
func (s *Store) GetAnalysis(ctx context.Context, videoID string) (*entities.Analysis, error) {
	var doc analysisDoc
	err := s.db.Collection(CollectionAnalyses).FindOne(ctx, bson.M{"video_id": videoID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// CreateAnalysis inserts a new analysis document
func (s *Store) CreateAnalysis(ctx context.Context, videoID string, result entities.AnalysisResult) (string, error) {
	analysis := entities.NewAnalysis(videoID, result)
	if _, err := s.db.Collection(CollectionAnalyses).InsertOne(ctx, newAnalysisDoc(analysis)); err != nil {
		return "", err
	}
	return analysis.ID, nil
}

// PatchAnalysis sets analysis.<field> for every patched field
func (s *Store) PatchAnalysis(ctx context.Context, videoID string, patch entities.AnalysisPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, nil
	}
	result := patch.Result.Normalize()
	set := bson.M{"updated_at": time.Now().UTC()}
	for _, field := range patch.Fields {
		set["analysis."+string(field)] = field.Value(result)
	}

	res, err := s.db.Collection(CollectionAnalyses).UpdateOne(ctx, bson.M{"video_id": videoID}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// GetAnalysesByVideoIDs retrieves analyses for the given videos
func (s *Store) GetAnalysesByVideoIDs(ctx context.Context, videoIDs []string) ([]*entities.Analysis, error) {
	if len(videoIDs) == 0 {
		return []*entities.Analysis{}, nil
	}
	cursor, err := s.db.Collection(CollectionAnalyses).Find(ctx, bson.M{"video_id": bson.M{"$in": videoIDs}})
	if err != nil {
		return nil, err
	}
	var docs []analysisDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	analyses := make([]*entities.Analysis, 0, len(docs))
	for _, d := range docs {
		analyses = append(analyses, d.toEntity())
	}
	return analyses, nil
}

// BackfillLegacyDiscussions converts analysis.major_discussions into analysis.discussions
func (s *Store) BackfillLegacyDiscussions(ctx context.Context) (int64, error) {
	coll := s.db.Collection(CollectionAnalyses)
	filter := bson.M{
		"analysis.discussions":       bson.M{"$exists": false},
		"analysis.major_discussions": bson.M{"$exists": true},
	}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var converted int64
	for cursor.Next(ctx) {
		var doc analysisDoc
		if err := cursor.Decode(&doc); err != nil {
			return converted, err
		}
		upgraded := doc.Analysis.MajorDiscussions.Upgrade()
		res, err := coll.UpdateOne(ctx,
			bson.M{"_id": doc.ID, "analysis.discussions": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"analysis.discussions": upgraded, "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			return converted, fmt.Errorf("backfill %s: %w", doc.VideoID, err)
		}
		converted += res.ModifiedCount
	}
	return converted, cursor.Err()
}
