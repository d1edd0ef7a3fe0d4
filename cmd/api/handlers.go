package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wms-platform/replenishment-service/pkg/api"
	"github.com/wms-platform/replenishment-service/pkg/errors"
	"github.com/wms-platform/replenishment-service/pkg/kafka"
	"github.com/wms-platform/replenishment-service/pkg/logging"
	"github.com/wms-platform/replenishment-service/pkg/middleware"

	"github.com/wms-platform/replenishment-service/internal/application"
	"github.com/wms-platform/replenishment-service/internal/domain"
	"github.com/wms-platform/replenishment-service/internal/infrastructure/cache"
	"github.com/wms-platform/replenishment-service/internal/infrastructure/postgres"
)

const serviceName = "replenishment-service"

// Config holds application configuration
type Config struct {
	ServerAddr     string
	Postgres       *postgres.Config
	Redis          *cache.Config
	Kafka          *kafka.Config
	RateLimit      string
	AllowedOrigins []string
	AutoMigrate    bool
}

// loadEnvFile loads a .env file into the environment when one is present
func loadEnvFile() bool {
	return godotenv.Load() == nil
}

func loadConfig() *Config {
	pg := postgres.DefaultConfig()
	pg.DSN = databaseDSN()
	pg.Database = getEnv("DB_NAME", pg.Database)

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisConfig := cache.DefaultConfig()
	redisConfig.Addr = getEnv("REDIS_ADDR", redisConfig.Addr)
	redisConfig.Password = getEnv("REDIS_PASSWORD", "")
	redisConfig.DB = redisDB
	redisConfig.TTL = parseDuration(getEnv("CACHE_TTL", "15m"), redisConfig.TTL)

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = splitList(getEnv("KAFKA_BROKERS", "localhost:9092"))
	kafkaConfig.ClientID = serviceName

	return &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8020"),
		Postgres:       pg,
		Redis:          redisConfig,
		Kafka:          kafkaConfig,
		RateLimit:      getEnv("RATE_LIMIT", "100-S"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		AutoMigrate:    getEnv("AUTO_MIGRATE", "true") == "true",
	}
}

// databaseDSN prefers DATABASE_DSN and otherwise builds one from DB_* variables
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return postgres.BuildDSN(
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "replenishment"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// registerRoutes mounts the /api/v1 routes
func registerRoutes(router gin.IRouter, service *application.ReplenishmentService, logger *logging.Logger) {
	v1 := router.Group("/api/v1")
	{
		stock := v1.Group("/stock")
		{
			stock.POST("/snapshot", loadStockHandler(service, logger))
			stock.GET("/snapshot", getStockHandler(service, logger))
		}

		replenishment := v1.Group("/replenishment")
		{
			replenishment.POST("/resolve", resolveHandler(service, logger))
			replenishment.POST("/lines", importLinesHandler(service, logger))
			replenishment.GET("/lines", listLinesHandler(service, logger))
			replenishment.POST("/divide", divideHandler(service, logger))
		}

		products := v1.Group("/products")
		{
			products.POST("", importProductsHandler(service, logger))
			products.POST("/locations", importProductLocationsHandler(service, logger))
			products.GET("", listProductsHandler(service, logger))
		}

		workers := v1.Group("/workers")
		{
			workers.PUT("", replaceWorkersHandler(service, logger))
			workers.GET("", listWorkersHandler(service, logger))
			workers.GET("/:name/assignments", assignmentsHandler(service, logger))
			workers.POST("/:name/selections", selectHandler(service, logger))
			workers.PUT("/:name/selections", replaceSelectionsHandler(service, logger))
			workers.GET("/:name/selections", workerSelectionsHandler(service, logger))
			workers.POST("/:name/manual-list", addManualItemHandler(service, logger))
			workers.PUT("/:name/manual-list", replaceManualListHandler(service, logger))
			workers.GET("/:name/manual-list", manualListHandler(service, logger))
		}

		qr := v1.Group("/qr-locations")
		{
			qr.POST("", importQRLocationsHandler(service, logger))
			qr.GET("/:code", locationByQRHandler(service, logger))
		}
		v1.GET("/locations/:location/qr", qrByLocationHandler(service, logger))

		v1.GET("/selections", listSelectionsHandler(service, logger))
		v1.POST("/picks", recordPickHandler(service, logger))
		v1.GET("/picks", listPicksHandler(service, logger))
		v1.POST("/discards", recordDiscardHandler(service, logger))
		v1.GET("/discards", listDiscardsHandler(service, logger))
	}
}

// domainErrors maps domain sentinels to API errors
var domainErrors = []errors.DomainMapping{
	{Target: domain.ErrInvalidInput, Code: errors.CodeValidationError, HTTPStatus: http.StatusBadRequest},
	{Target: domain.ErrInvalidCoordinate, Code: errors.CodeValidationError, HTTPStatus: http.StatusBadRequest},
	{Target: domain.ErrNoWorkers, Code: errors.CodeValidationError, HTTPStatus: http.StatusBadRequest},
	{Target: domain.ErrManualItemEAN, Code: errors.CodeValidationError, HTTPStatus: http.StatusBadRequest},
	{Target: domain.ErrDiscardKey, Code: errors.CodeValidationError, HTTPStatus: http.StatusBadRequest},
	{Target: domain.ErrNoLines, Code: errors.CodeConflict, HTTPStatus: http.StatusConflict},
	{Target: domain.ErrLineNotFound, Code: errors.CodeNotFound, HTTPStatus: http.StatusNotFound},
	{Target: domain.ErrQRCodeNotFound, Code: errors.CodeNotFound, HTTPStatus: http.StatusNotFound},
	{Target: domain.ErrLocationNotFound, Code: errors.CodeNotFound, HTTPStatus: http.StatusNotFound},
}

func respondError(responder *middleware.ErrorResponder, err error) {
	responder.RespondWithAppError(errors.MapDomainError(err, domainErrors...))
}

// readRows reads the body and decodes it with decode. Every failure is a validation error.
func readRows(c *gin.Context, responder *middleware.ErrorResponder, decode func([]byte) ([]domain.Row, error)) ([]domain.Row, bool) {
	body, appErr := api.ReadBody(c)
	if appErr != nil {
		responder.RespondWithAppError(errors.ErrValidation(appErr.Message))
		return nil, false
	}
	rows, err := decode(body)
	if err != nil {
		respondError(responder, err)
		return nil, false
	}
	return rows, true
}

type lookupQuery struct {
	Key string `form:"key" binding:"omitempty,lookup_key"`
}

func lookupKey(c *gin.Context, responder *middleware.ErrorResponder) (domain.LookupKey, bool) {
	var query lookupQuery
	if appErr := api.BindQueryAndValidate(c, &query); appErr != nil {
		responder.RespondWithAppError(appErr)
		return "", false
	}
	key, err := domain.ParseLookupKey(query.Key)
	if err != nil {
		responder.RespondValidationError(err.Error(), map[string]string{"key": "must be one of: ean, id"})
		return "", false
	}
	return key, true
}

type workerQuery struct {
	Worker string `form:"worker" binding:"omitempty,worker_name"`
}

// workerFilter returns the optional ?worker= filter
func workerFilter(c *gin.Context, responder *middleware.ErrorResponder) (string, bool) {
	var query workerQuery
	if appErr := api.BindQueryAndValidate(c, &query); appErr != nil {
		responder.RespondWithAppError(appErr)
		return "", false
	}
	return query.Worker, true
}

type workerURI struct {
	Name string `uri:"name" binding:"required,worker_name"`
}

func workerName(c *gin.Context, responder *middleware.ErrorResponder) (string, bool) {
	var uri workerURI
	if appErr := api.BindURIAndValidate(c, &uri); appErr != nil {
		responder.RespondWithAppError(appErr)
		return "", false
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"worker.name": uri.Name,
	})
	return uri.Name, true
}

func loadStockHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		rows, ok := readRows(c, responder, domain.DecodeRows)
		if !ok {
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"stock.rows": len(rows),
		})

		result, err := service.LoadStock(c.Request.Context(), application.LoadStockCommand{Rows: rows})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

func getStockHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		snapshot, err := service.CurrentStock(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, snapshot)
	}
}

func resolveHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		rows, ok := readRows(c, responder, domain.DecodeSelection)
		if !ok {
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"replenishment.requests": len(rows),
		})

		results, err := service.Resolve(c.Request.Context(), application.ResolveCommand{Rows: rows})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": results})
	}
}

func importProductsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		rows, ok := readRows(c, responder, domain.DecodeRows)
		if !ok {
			return
		}

		result, err := service.ImportProducts(c.Request.Context(), application.ImportProductsCommand{Rows: rows})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

func importProductLocationsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		key, ok := lookupKey(c, responder)
		if !ok {
			return
		}
		rows, ok := readRows(c, responder, domain.DecodeRows)
		if !ok {
			return
		}

		result, err := service.ImportProductLocations(c.Request.Context(), application.ImportLocationsCommand{Key: key, Rows: rows})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func listProductsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		products, err := service.ListProducts(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func importLinesHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		key, ok := lookupKey(c, responder)
		if !ok {
			return
		}
		rows, ok := readRows(c, responder, domain.DecodeRows)
		if !ok {
			return
		}

		result, err := service.ImportLines(c.Request.Context(), application.ImportLinesCommand{Key: key, Rows: rows})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

func listLinesHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		lines, err := service.ListLines(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, lines)
	}
}

func divideHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Workers []string `json:"workers" binding:"required,min=1"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"replenishment.workers": len(req.Workers),
		})

		result, err := service.Divide(c.Request.Context(), application.DivideCommand{Workers: req.Workers})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func assignmentsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		name, ok := workerName(c, responder)
		if !ok {
			return
		}

		lines, err := service.Assigned(c.Request.Context(), name)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, lines)
	}
}

func selectHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		name, ok := workerName(c, responder)
		if !ok {
			return
		}

		var req struct {
			LineID int64 `json:"lineId" binding:"required,gte=1"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		selection, err := service.Select(c.Request.Context(), application.SelectCommand{WorkerName: name, LineID: req.LineID})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, selection)
	}
}

func replaceSelectionsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		name, ok := workerName(c, responder)
		if !ok {
			return
		}

		var req struct {
			LineIDs []int64 `json:"lineIds" binding:"required"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		selections, err := service.ReplaceSelections(c.Request.Context(), application.ReplaceSelectionsCommand{
			WorkerName: name,
			LineIDs:    req.LineIDs,
		})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, selections)
	}
}

func workerSelectionsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		name, ok := workerName(c, responder)
		if !ok {
			return
		}

		selections, err := service.Selections(c.Request.Context(), name)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, selections)
	}
}

func listSelectionsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		worker, ok := workerFilter(c, responder)
		if !ok {
			return
		}

		selections, err := service.Selections(c.Request.Context(), worker)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, selections)
	}
}

func recordPickHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			WorkerName string `json:"workerName" binding:"required,worker_name"`
			LineID     int64  `json:"lineId" binding:"required,gte=1"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"worker.name": req.WorkerName,
			"line.id":     req.LineID,
		})

		pick, err := service.RecordPick(c.Request.Context(), application.RecordPickCommand{
			WorkerName: req.WorkerName,
			LineID:     req.LineID,
		})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, pick)
	}
}

func listPicksHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		worker, ok := workerFilter(c, responder)
		if !ok {
			return
		}

		picks, err := service.ListPicks(c.Request.Context(), worker)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, picks)
	}
}

func replaceWorkersHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Workers []string `json:"workers" binding:"required"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		workers, err := service.ReplaceWorkers(c.Request.Context(), application.ReplaceWorkersCommand{Names: req.Workers})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, workers)
	}
}

func listWorkersHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		workers, err := service.ListWorkers(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, workers)
	}
}

func importQRLocationsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		rows, ok := readRows(c, responder, domain.DecodeRows)
		if !ok {
			return
		}

		result, err := service.ImportQRLocations(c.Request.Context(), application.ImportQRLocationsCommand{Rows: rows})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

func locationByQRHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var uri struct {
			Code string `uri:"code" binding:"required,max=128"`
		}
		if appErr := api.BindURIAndValidate(c, &uri); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		qr, err := service.LocationByQR(c.Request.Context(), uri.Code)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, qr)
	}
}

func qrByLocationHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var uri struct {
			Location string `uri:"location" binding:"required,max=64"`
		}
		if appErr := api.BindURIAndValidate(c, &uri); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		qr, err := service.QRByLocation(c.Request.Context(), uri.Location)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, qr)
	}
}

func addManualItemHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		name, ok := workerName(c, responder)
		if !ok {
			return
		}

		var req struct {
			EAN      string `json:"ean" binding:"required,max=64"`
			Model    string `json:"model" binding:"max=255"`
			Color    string `json:"color" binding:"max=100"`
			Size     string `json:"size" binding:"max=50"`
			Quantity int    `json:"quantity" binding:"omitempty,gte=1"`
			Location string `json:"location" binding:"max=64"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		item, err := service.AddManualItem(c.Request.Context(), application.AddManualItemCommand{
			WorkerName: name,
			EAN:        req.EAN,
			Model:      req.Model,
			Color:      req.Color,
			Size:       req.Size,
			Quantity:   req.Quantity,
			Location:   req.Location,
		})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

func replaceManualListHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		name, ok := workerName(c, responder)
		if !ok {
			return
		}
		rows, ok := readRows(c, responder, domain.DecodeRows)
		if !ok {
			return
		}

		result, err := service.ReplaceManualList(c.Request.Context(), application.ReplaceManualListCommand{
			WorkerName: name,
			Rows:       rows,
		})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func manualListHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		name, ok := workerName(c, responder)
		if !ok {
			return
		}

		items, err := service.ManualList(c.Request.Context(), name)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func recordDiscardHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			EAN        string `json:"ean" binding:"required_without=ItemID,max=64"`
			ItemID     string `json:"itemId" binding:"required_without=EAN,max=64"`
			WorkerName string `json:"workerName" binding:"omitempty,worker_name"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		discard, err := service.RecordDiscard(c.Request.Context(), application.RecordDiscardCommand{
			EAN:        req.EAN,
			ItemID:     req.ItemID,
			WorkerName: req.WorkerName,
		})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, discard)
	}
}

func listDiscardsHandler(service *application.ReplenishmentService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		discards, err := service.ListDiscards(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, discards)
	}
}
