package middleware

import (
	"github.com/helica-bio/expertgraph/backend/internal/util"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/helica-bio/expertgraph/backend/pkg/ai"
	oai "github.com/helica-bio/expertgraph/backend/pkg/ai/ollama"
	gai "github.com/helica-bio/expertgraph/backend/pkg/ai/openai"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
	"github.com/helica-bio/expertgraph/backend/pkg/store"
	storepgx "github.com/helica-bio/expertgraph/backend/pkg/store/pgx"
	stores3 "github.com/helica-bio/expertgraph/backend/pkg/store/s3"
)

type App struct {
	DBConn     *pgxpool.Pool
	Queue      *amqp091.Channel
	S3         *s3.Client
	AiClient   ai.GraphAIClient
	GraphStore *store.GraphStore
}

type AppContext struct {
	echo.Context
	App *App
}

// NewAIClient builds the enrichment backend selected by AI_ADAPTER. Shared
// with the worker so both processes resolve entities the same way.
func NewAIClient() ai.GraphAIClient {
	adapter := util.GetEnv("AI_ADAPTER")

	switch adapter {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			EnrichmentModel: util.GetEnv("AI_ENRICH_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			EnrichmentModel: util.GetEnv("AI_ENRICH_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}
}

// NewGraphStore wires the two-phase persistence over the given backends.
func NewGraphStore(db *pgxpool.Pool, s3Client *s3.Client) *store.GraphStore {
	snapshots := stores3.NewSnapshotStore(stores3.NewSnapshotStoreParams{
		Client: s3Client,
		Bucket: util.GetEnvString("AWS_BUCKET", "expertgraph"),
	})
	index := storepgx.NewIndexStore(db)
	return store.NewGraphStore(snapshots, index)
}

func AppContextMiddleware(
	db *pgxpool.Pool,
	queue *amqp091.Channel,
	s3Client *s3.Client,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				DBConn:     db,
				Queue:      queue,
				S3:         s3Client,
				AiClient:   NewAIClient(),
				GraphStore: NewGraphStore(db, s3Client),
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
