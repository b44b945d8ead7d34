package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bitmark-inc/schisto-api/external/gemini"
	"github.com/bitmark-inc/schisto-api/geo"
	"github.com/bitmark-inc/schisto-api/logmodule"
	"github.com/bitmark-inc/schisto-api/schema"
	"github.com/bitmark-inc/schisto-api/store"
	"github.com/bitmark-inc/schisto-api/utils"
	"github.com/bitmark-inc/schisto-api/wizard"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Chatbot answers health questions in a conversation
type Chatbot interface {
	Chat(ctx context.Context, systemInstruction string, history []gemini.Turn, message string, attachment *gemini.Attachment) (gemini.Reply, error)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// base context of background work started by requests
	ctx context.Context

	// Stores
	store      store.SchistoCore
	mongoStore store.MongoStore
	sessions   store.SessionStore

	zones []schema.HotspotZone

	// JWT secret of the authentication backend
	jwtSecret []byte

	// External services
	classifier wizard.SnailClassifier
	chatbot    Chatbot
	resolver   geo.LocationResolver

	freePromptLimit int

	metrics *Metrics
}

// NewServer new instance of server
func NewServer(
	ctx context.Context,
	ormDB *gorm.DB,
	mongoClient *mongo.Client,
	sessions *store.SessionRegistry,
	zones []schema.HotspotZone,
	jwtSecret []byte,
	classifier wizard.SnailClassifier,
	chatbot Chatbot,
	resolver geo.LocationResolver) *Server {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.WatchSessions(sessions)

	return &Server{
		ctx:             ctx,
		store:           store.NewSchistoStore(ormDB),
		mongoStore:      store.NewMongoStore(mongoClient, viper.GetString("mongo.database")),
		sessions:        sessions,
		zones:           zones,
		jwtSecret:       jwtSecret,
		classifier:      metrics.CountClassifications(classifier),
		chatbot:         chatbot,
		resolver:        resolver,
		freePromptLimit: viper.GetInt("usage.free_prompt_limit"),
		metrics:         metrics,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(corsConfig()))
	apiRoute.GET("/information", s.information)
	apiRoute.GET("/zones", s.listZones)

	assessmentRoute := apiRoute.Group("/assessments")
	{
		assessmentRoute.POST("", s.createAssessment)
	}

	sessionRoute := assessmentRoute.Group("/:id")
	sessionRoute.Use(s.recognizeSessionMiddleware())
	{
		sessionRoute.GET("", s.getAssessment)
		sessionRoute.DELETE("", s.deleteAssessment)
		sessionRoute.POST("/start", s.startAssessment)
		sessionRoute.POST("/location", s.completeLocation)
		sessionRoute.PATCH("/answers", s.updateAnswers)
		sessionRoute.POST("/activities/:activity", s.toggleActivity)
		sessionRoute.POST("/next", s.nextStep)
		sessionRoute.POST("/back", s.previousStep)
		sessionRoute.POST("/restart", s.restartAssessment)
		sessionRoute.POST("/snail", s.uploadSnail)
		sessionRoute.GET("/result", s.assessmentResult)
	}

	// api route other than the assessments will apply the following middleware
	apiRoute.Use(s.authMiddleware())
	apiRoute.Use(s.recognizeProfileMiddleware())
	{
		apiRoute.GET("/profile", s.profileDetail)
		apiRoute.POST("/profile/upgrade", s.profileUpgrade)
		apiRoute.POST("/chat", s.chat)
	}

	metricRoute := r.Group("/metrics")
	metricRoute.Use(logmodule.Ginrus("Metric"))
	metricRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	metricRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.metric")))
	{
		metricRoute.GET("", gin.WrapH(s.metrics.Handler()))
	}

	r.GET("/healthz", s.healthz)

	return r
}

func corsConfig() cors.Config {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Geo-Position"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if origins := viper.GetStringSlice("cors.allow_origins"); len(origins) > 0 {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}

	return config
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	err = s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"languages":         utils.SupportedLanguages,
			"steps":             wizard.Steps,
			"free_prompt_limit": s.freePromptLimit,
			"system_version":    "Schisto 0.1",
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
