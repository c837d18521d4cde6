package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campuschain/access-layer/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")

	var dsn string
	var err error

	if dbHost != "" {
		dbPort := os.Getenv("TEST_DB_PORT")
		dbUser := os.Getenv("TEST_DB_USER")
		dbPassword := os.Getenv("TEST_DB_PASSWORD")
		dbName := os.Getenv("TEST_DB_NAME")
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)
	} else {
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&schema.Enrollment{},
		&schema.Submission{},
		&schema.Vote{},
		&schema.KeyValueStore{},
	)
	if err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	code := m.Run()

	terminateContainer(ctx)
	os.Exit(code)
}

func terminateContainer(ctx context.Context) {
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// initPGTestDB wraps each test in a rolled-back transaction for isolation
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })
	return NewPGStore(tx)
}

func buildTestSubmission(contestID string, author string) *schema.Submission {
	return &schema.Submission{
		ID:               ulid.Make().String(),
		ContestID:        contestID,
		NumericContestID: 7,
		AuthorAddress:    author,
		Title:            "Generative study no. 4",
		Description:      "Built with p5.js",
		Media:            datatypes.JSON([]byte(`[{"kind":"image","url":"ipfs://bafy/4.png"}]`)),
		MetadataURI:      "ipfs://bafy/4.json",
	}
}

func TestEnrollmentRoundTrip(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	actor := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

	has, err := s.HasEnrollment(ctx, actor, 42)
	require.NoError(t, err)
	assert.False(t, has)

	err = s.CreateEnrollment(ctx, &schema.Enrollment{
		ActorAddress:  actor,
		CourseTokenID: 42,
		Source:        schema.EnrollmentSourcePurchase,
	})
	require.NoError(t, err)

	// lookup is case-insensitive on the address
	has, err = s.HasEnrollment(ctx, actor, 42)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.HasEnrollment(ctx, actor, 43)
	require.NoError(t, err)
	assert.False(t, has)

	// duplicate assertion is a no-op
	err = s.CreateEnrollment(ctx, &schema.Enrollment{
		ActorAddress:  actor,
		CourseTokenID: 42,
		Source:        schema.EnrollmentSourceAdmin,
	})
	require.NoError(t, err)
}

func TestSubmissionLifecycle(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	submission := buildTestSubmission("contest-1", "0x1111111111111111111111111111111111111111")
	require.NoError(t, s.CreateSubmission(ctx, submission))

	got, err := s.GetSubmissionByID(ctx, submission.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Pending())
	assert.Equal(t, submission.Title, got.Title)

	missing, err := s.GetSubmissionByID(ctx, ulid.Make().String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	onchainID := "0xdeadbeef00000000000000000000000000000000000000000000000000000001"
	require.NoError(t, s.SetSubmissionOnchainID(ctx, submission.ID, onchainID))

	got, err = s.GetSubmissionByID(ctx, submission.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OnchainID)
	assert.Equal(t, onchainID, *got.OnchainID)
	assert.False(t, got.Pending())

	// user-authored columns survive the backfill
	assert.Equal(t, submission.Title, got.Title)
	assert.Equal(t, submission.Description, got.Description)
	assert.JSONEq(t, string(submission.Media), string(got.Media))

	// same id again is a no-op
	require.NoError(t, s.SetSubmissionOnchainID(ctx, submission.ID, onchainID))

	// a different id is never written over a resolved one
	err = s.SetSubmissionOnchainID(ctx, submission.ID,
		"0xdeadbeef00000000000000000000000000000000000000000000000000000002")
	assert.ErrorIs(t, err, ErrOnchainIDConflict)
}

func TestListSubmissionsByContest(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	author := "0x1111111111111111111111111111111111111111"
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateSubmission(ctx, buildTestSubmission("contest-1", author)))
	}
	require.NoError(t, s.CreateSubmission(ctx, buildTestSubmission("contest-2", author)))

	submissions, err := s.ListSubmissionsByContest(ctx, "contest-1")
	require.NoError(t, err)
	assert.Len(t, submissions, 3)

	submissions, err = s.ListSubmissionsByContest(ctx, "contest-3")
	require.NoError(t, err)
	assert.Empty(t, submissions)
}

func TestVoteLifecycle(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	first := buildTestSubmission("contest-1", "0x1111111111111111111111111111111111111111")
	second := buildTestSubmission("contest-1", "0x2222222222222222222222222222222222222222")
	require.NoError(t, s.CreateSubmission(ctx, first))
	require.NoError(t, s.CreateSubmission(ctx, second))

	voter := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

	require.NoError(t, s.RecordVote(ctx, &schema.Vote{
		VoterAddress: voter,
		ContestID:    "contest-1",
		SubmissionID: first.ID,
	}))

	vote, err := s.GetVote(ctx, voter, "contest-1")
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, first.ID, vote.SubmissionID)

	got, err := s.GetSubmissionByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VoteCount)

	// voting the same submission again changes nothing
	require.NoError(t, s.RecordVote(ctx, &schema.Vote{
		VoterAddress: voter,
		ContestID:    "contest-1",
		SubmissionID: first.ID,
	}))
	got, err = s.GetSubmissionByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VoteCount)

	// moving the vote shifts the counts
	require.NoError(t, s.RecordVote(ctx, &schema.Vote{
		VoterAddress: voter,
		ContestID:    "contest-1",
		SubmissionID: second.ID,
	}))
	got, err = s.GetSubmissionByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.VoteCount)
	got, err = s.GetSubmissionByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VoteCount)

	require.NoError(t, s.RemoveVote(ctx, voter, "contest-1"))
	got, err = s.GetSubmissionByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.VoteCount)

	vote, err = s.GetVote(ctx, voter, "contest-1")
	require.NoError(t, err)
	assert.Nil(t, vote)

	err = s.RemoveVote(ctx, voter, "contest-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestKeyValueStore(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	value, err := s.GetValue(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, s.SetValue(ctx, "sponsor_ready:0xabc", "true"))
	value, err = s.GetValue(ctx, "sponsor_ready:0xabc")
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	require.NoError(t, s.SetValue(ctx, "sponsor_ready:0xabc", "false"))
	value, err = s.GetValue(ctx, "sponsor_ready:0xabc")
	require.NoError(t, err)
	assert.Equal(t, "false", value)
}
