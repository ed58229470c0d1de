package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/pathviz/api"
	api_i "github.com/beka-birhanu/pathviz/api/i"
	"github.com/beka-birhanu/pathviz/api/identity"
	solverapi "github.com/beka-birhanu/pathviz/api/solver"
	"github.com/beka-birhanu/pathviz/config"
	"github.com/beka-birhanu/pathviz/infrastruture/cache"
	"github.com/beka-birhanu/pathviz/infrastruture/repo"
	"github.com/beka-birhanu/pathviz/infrastruture/token"
	"github.com/beka-birhanu/pathviz/service"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Dependencies of the serve command
var (
	redisClient      *redis.Client
	mongoClient      *mongo.Client
	resultCache      i.ResultCache
	runRepo          i.RunRepo
	solverService    *service.SolverService
	jwtTokenizer     i.Tokenizer
	authController   api_i.Controller
	solverController api_i.Controller
	router           *api.Router
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver commands over HTTP",
	Run:   serveCommand,
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initResultCache(client *redis.Client) {
	var err error
	resultCache, err = cache.NewRedisResultCache(client, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating result cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Result cache initialized")
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%v", config.Envs.DBHost, config.Envs.DBPort)
	if config.Envs.DBUser != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRunRepo(client *mongo.Client) {
	runRepo = repo.NewRunRepo(client, config.Envs.DBName, "runs")
	appLogger.Info("Run repository initialized")
}

func initSolverService() {
	var err error
	solverService, err = service.NewSolverService(&service.SolverServiceConfig{
		Generator: newGenerator(),
		Cache:     resultCache,
		Runs:      runRepo,
		Logger:    newLogger("SOLVER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solver service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solver service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.MustGetEnv("JWT_SECRET"), config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthController() {
	var err error
	authController, err = identity.NewIdentityServer(jwtTokenizer, config.MustGetEnv("API_KEY"), 0)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth controller initialized")
}

func initSolverController() {
	timeout := time.Duration(config.Envs.SolveTimeoutMS) * time.Millisecond
	var err error
	solverController, err = solverapi.NewController(solverService, solverService, timeout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solver controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solver controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, solverController},
		AuthorizationMiddleware: identity.Authoriz(t),
		Mode:                    config.Envs.GinMode,
	})
	appLogger.Info("Router initialized")
}

func serveCommand(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	if config.Envs.RedisAddr != "" {
		initRedis(ctx)
		defer redisClient.Close()
		initResultCache(redisClient)
	} else {
		appLogger.Warning("REDIS_ADDR not set, replies are not cached")
	}

	if config.Envs.DBHost != "" {
		initMongo(ctx)
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		initRunRepo(mongoClient)
	} else {
		appLogger.Warning("DB_HOST not set, runs are not recorded")
	}

	initSolverService()
	initJWTTokenizer()
	initAuthController()
	initSolverController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
