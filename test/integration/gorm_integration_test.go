package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tevez07b9/notebooklm/internal/entity"
	"github.com/tevez07b9/notebooklm/internal/repository/unitofwork"
	"github.com/tevez07b9/notebooklm/pkg/database"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.DocumentPageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Transactional Document Roundtrip", func(t *testing.T) {
		ctx := context.Background()
		documentId := "integration-" + uuid.New().String() + ".pdf"

		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		doc := &entity.Document{
			Id:           uuid.New(),
			DocumentId:   documentId,
			OriginalName: "integration.pdf",
			Title:        "Integration Test Document",
			Summary:      "Created by the gorm integration test.",
			Keywords:     []string{"integration", "test"},
			PageCount:    1,
			CreatedAt:    time.Now(),
		}
		require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

		page := &entity.DocumentPage{
			Id:         uuid.New(),
			DocumentId: documentId,
			PageNumber: 1,
			Text:       "integration page text",
			Embedding:  make([]float32, 1536),
			CreatedAt:  time.Now(),
		}
		require.NoError(t, uow.DocumentPageRepository().CreateBatch(ctx, []*entity.DocumentPage{page}))

		found, err := uow.DocumentRepository().FindByDocumentId(ctx, documentId)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{"integration", "test"}, found.Keywords)

		pages, err := uow.DocumentPageRepository().FindByDocumentId(ctx, documentId)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, 1, pages[0].PageNumber)
		assert.Len(t, pages[0].Embedding, 1536)

		// Rollback via defer keeps the database clean
	})
}
