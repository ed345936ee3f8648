package repositories

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/microposts/backend/internal/models"
	"github.com/anonto42/microposts/backend/internal/social"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

// storeFactories lists every backend the contract runs against. Mongo only
// joins when MONGO_TEST_URI points at a reachable server.
func storeFactories() map[string]func(t *testing.T) social.RelationStore {
	factories := map[string]func(t *testing.T) social.RelationStore{
		"gorm": func(t *testing.T) social.RelationStore {
			return NewGormRelationStore(newTestDB(t))
		},
		"memory": func(t *testing.T) social.RelationStore {
			return NewMemoryRelationStore()
		},
	}
	if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
		factories["mongo"] = func(t *testing.T) social.RelationStore {
			return newMongoTestStore(t, uri)
		}
	}
	return factories
}

func newMongoTestStore(t *testing.T, uri string) *MongoRelationStore {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("microposts_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	store := NewMongoRelationStore(db)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestRelationStoreContract(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Run("add then exists", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				ok, err := s.Exists(ctx, social.Followings, 1, 2)
				require.NoError(t, err)
				assert.False(t, ok)

				require.NoError(t, s.Add(ctx, social.Followings, 1, 2))

				ok, err = s.Exists(ctx, social.Followings, 1, 2)
				require.NoError(t, err)
				assert.True(t, ok)

				ok, err = s.Exists(ctx, social.Followings, 2, 1)
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("duplicate add", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				require.NoError(t, s.Add(ctx, social.Favorites, 1, 10))
				assert.ErrorIs(t, s.Add(ctx, social.Favorites, 1, 10), social.ErrDuplicateEdge)

				n, err := s.CountTargets(ctx, social.Favorites, 1)
				require.NoError(t, err)
				assert.EqualValues(t, 1, n)
			})

			t.Run("remove", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				require.NoError(t, s.Add(ctx, social.Followings, 1, 2))
				require.NoError(t, s.Remove(ctx, social.Followings, 1, 2))
				assert.ErrorIs(t, s.Remove(ctx, social.Followings, 1, 2), social.ErrEdgeNotFound)

				ok, err := s.Exists(ctx, social.Followings, 1, 2)
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("relations are independent", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				require.NoError(t, s.Add(ctx, social.Followings, 1, 2))

				ok, err := s.Exists(ctx, social.Favorites, 1, 2)
				require.NoError(t, err)
				assert.False(t, ok)
				assert.ErrorIs(t, s.Remove(ctx, social.Favorites, 1, 2), social.ErrEdgeNotFound)
			})

			t.Run("list and count", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				for _, e := range [][2]uint{{1, 5}, {1, 3}, {1, 4}, {2, 3}, {4, 3}} {
					require.NoError(t, s.Add(ctx, social.Followings, e[0], e[1]))
				}

				targets, err := s.ListTargets(ctx, social.Followings, 1)
				require.NoError(t, err)
				assert.Equal(t, []uint{3, 4, 5}, targets)

				owners, err := s.ListOwners(ctx, social.Followings, 3)
				require.NoError(t, err)
				assert.Equal(t, []uint{1, 2, 4}, owners)

				none, err := s.ListTargets(ctx, social.Followings, 99)
				require.NoError(t, err)
				assert.NotNil(t, none)
				assert.Empty(t, none)

				out, err := s.CountTargets(ctx, social.Followings, 1)
				require.NoError(t, err)
				in, err := s.CountOwners(ctx, social.Followings, 3)
				require.NoError(t, err)
				assert.EqualValues(t, 3, out)
				assert.EqualValues(t, 3, in)
			})

			t.Run("unknown relation", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				_, err := s.Exists(ctx, social.Relation("blocks"), 1, 2)
				assert.Error(t, err)
				assert.Error(t, s.Add(ctx, social.Relation("blocks"), 1, 2))
			})
		})
	}
}

func TestGormRelationStoreWritesJoinTables(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewGormRelationStore(db)

	require.NoError(t, s.Add(ctx, social.Followings, 1, 2))
	require.NoError(t, s.Add(ctx, social.Favorites, 1, 10))

	var follow models.UserFollow
	require.NoError(t, db.First(&follow, "user_id = ? AND follow_id = ?", 1, 2).Error)
	assert.False(t, follow.CreatedAt.IsZero())

	var fav models.Favorite
	require.NoError(t, db.First(&fav, "user_id = ? AND micropost_id = ?", 1, 10).Error)
	assert.EqualValues(t, 10, fav.MicropostID)
}

func TestMicropostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormMicropostRepository(newTestDB(t))

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	posts := []*models.Micropost{
		{UserID: 1, Content: "first", CreatedAt: base},
		{UserID: 2, Content: "second", CreatedAt: base.Add(time.Minute)},
		{UserID: 3, Content: "stranger", CreatedAt: base.Add(2 * time.Minute)},
		{UserID: 1, Content: "third", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, p := range posts {
		require.NoError(t, repo.CreateMicropost(ctx, p))
	}

	n, err := repo.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	feed, err := repo.ListByAuthors(ctx, []uint{1, 2})
	require.NoError(t, err)
	var contents []string
	for _, p := range feed {
		contents = append(contents, p.Content)
	}
	assert.Equal(t, []string{"third", "second", "first"}, contents)

	empty, err := repo.ListByAuthors(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	uid := "fb-123"
	user := &models.User{Name: "alice", Email: "alice@example.com", FirebaseUID: &uid}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Name)

	byUID, err := repo.GetUserByFirebaseUID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUID.ID)

	_, err = repo.GetUserByFirebaseUID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
