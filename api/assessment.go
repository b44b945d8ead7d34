package api

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/schisto-api/schema"
	"github.com/bitmark-inc/schisto-api/score"
	"github.com/bitmark-inc/schisto-api/store"
	"github.com/bitmark-inc/schisto-api/utils"
	"github.com/bitmark-inc/schisto-api/wizard"
)

const maxSnailImageSize = 10 << 20

// recognizeSessionMiddleware is a middleware to look up the assessment
// session of the path. It attaches a "session" key in gin's context.
func (s *Server) recognizeSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := s.sessions.GetSession(c.Param("id"))
		if err == store.ErrSessionNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorSessionNotFound)
			return
		} else if shouldInterupt(err, c) {
			return
		}

		c.Set("session", session)
		c.Next()
	}
}

func currentSession(c *gin.Context) (*store.Session, bool) {
	session, ok := c.MustGet("session").(*store.Session)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	}
	return session, ok
}

func sessionJSON(session *store.Session) gin.H {
	return gin.H{
		"id":    session.ID,
		"state": session.Wizard.Snapshot(),
	}
}

func abortWithWizardError(c *gin.Context, err error) {
	switch err {
	case wizard.ErrInvalidTransition:
		abortWithEncoding(c, http.StatusConflict, errorInvalidTransition)
	case wizard.ErrLocationInProgress:
		abortWithEncoding(c, http.StatusConflict, errorLocationInProgress)
	case wizard.ErrInvalidAge:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidAge)
	case wizard.ErrInvalidOccupation:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidOccupation)
	case wizard.ErrInvalidActivity:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidActivity)
	default:
		shouldInterupt(err, c)
	}
}

// createAssessment starts a new assessment session at the intro step
func (s *Server) createAssessment(c *gin.Context) {
	session := s.sessions.CreateSession()
	s.metrics.AssessmentCreated()

	log.WithField("api", "createAssessment").WithField("session", session.ID).Info("assessment created")
	c.JSON(http.StatusOK, gin.H{
		"result": sessionJSON(session),
	})
}

func (s *Server) getAssessment(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": sessionJSON(session),
	})
}

func (s *Server) deleteAssessment(c *gin.Context) {
	if err := s.sessions.DeleteSession(c.Param("id")); err != nil {
		abortWithEncoding(c, http.StatusNotFound, errorSessionNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

// startAssessment issues the location request of the session. A client
// which already has a position sends it in the Geo-Position header and the
// request completes right away. A client without location capability sets
// `geolocation` to false.
func (s *Server) startAssessment(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var params struct {
		Geolocation *bool `json:"geolocation"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&params); err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest)
			return
		}
	}

	var (
		token wizard.Token
		err   error
	)

	gp := c.GetHeader("Geo-Position")
	switch {
	case params.Geolocation != nil && !*params.Geolocation:
		token, err = session.Wizard.Locate(s.ctx, nil)
		if err == nil {
			s.metrics.LocationResult(wizard.GeoDenied)
		}
	case gp != "":
		lat, lng, parseErr := parseGeoPosition(gp)
		if parseErr != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, parseErr)
			return
		}
		token, err = session.Wizard.Start()
		if err == nil {
			session.Wizard.CompleteLocation(token, schema.Location{Latitude: lat, Longitude: lng}, nil)
			s.metrics.LocationResult(wizard.GeoFound)
		}
	default:
		token, err = session.Wizard.Start()
	}

	if err != nil {
		abortWithWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"token": token,
			"state": session.Wizard.Snapshot(),
		},
	})
}

// completeLocation receives the outcome of the location request from a
// client
func (s *Server) completeLocation(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var params struct {
		Token     wizard.Token `json:"token" binding:"required"`
		Latitude  *float64     `json:"latitude"`
		Longitude *float64     `json:"longitude"`
		Denied    bool         `json:"denied"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var (
		loc    schema.Location
		reason error
		status = wizard.GeoFound
	)

	switch {
	case params.Denied:
		reason, status = wizard.ErrPermissionDenied, wizard.GeoDenied
	case params.Latitude == nil || params.Longitude == nil:
		reason, status = wizard.ErrLocationUnavailable, wizard.GeoDenied
	default:
		loc = schema.Location{Latitude: *params.Latitude, Longitude: *params.Longitude}
	}

	if !session.Wizard.CompleteLocation(params.Token, loc, reason) {
		abortWithEncoding(c, http.StatusConflict, errorOutdatedToken)
		return
	}
	s.metrics.LocationResult(status)

	c.JSON(http.StatusOK, gin.H{
		"result": sessionJSON(session),
	})
}

func (s *Server) updateAnswers(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var answers wizard.Answers
	if err := c.BindJSON(&answers); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if err := session.Wizard.Apply(answers); err != nil {
		abortWithWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": sessionJSON(session),
	})
}

func (s *Server) toggleActivity(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	selected, err := session.Wizard.ToggleActivity(schema.WaterActivity(c.Param("activity")))
	if err != nil {
		abortWithWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"selected":   selected,
			"activities": session.Wizard.Assessment().Activities,
		},
	})
}

func (s *Server) nextStep(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	step, err := session.Wizard.Next()
	if err != nil {
		abortWithWizardError(c, err)
		return
	}

	if step == wizard.StepResult {
		s.metrics.RiskResult(score.TierOf(session.Wizard.Result().Score))
	}

	c.JSON(http.StatusOK, gin.H{
		"result": sessionJSON(session),
	})
}

func (s *Server) previousStep(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if _, err := session.Wizard.Back(); err != nil {
		abortWithWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": sessionJSON(session),
	})
}

func (s *Server) restartAssessment(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := session.Wizard.Restart(); err != nil {
		abortWithWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": sessionJSON(session),
	})
}

// uploadSnail starts the classification of a snail photo. The outcome is
// reported in the snail state of the session.
func (s *Server) uploadSnail(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorSnailImageMissing, err)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(file, maxSnailImageSize+1))
	if shouldInterupt(err, c) {
		return
	}
	if n == 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorSnailImageMissing)
		return
	}
	if n > maxSnailImageSize {
		abortWithEncoding(c, http.StatusRequestEntityTooLarge, errorSnailImageTooLarge)
		return
	}

	image := buf.Bytes()
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	token := session.Wizard.Classify(s.ctx, s.classifier, image, mimeType)

	c.JSON(http.StatusAccepted, gin.H{
		"result": gin.H{
			"token": token,
			"state": session.Wizard.Snapshot(),
		},
	})
}

// assessmentResult returns the risk result with labels in the language of
// the `lang` query
func (s *Server) assessmentResult(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	state := session.Wizard.Snapshot()
	if state.Result == nil {
		abortWithEncoding(c, http.StatusConflict, errorResultNotReady)
		return
	}

	lang := utils.NormalizeLanguage(c.Query("lang"))
	tier := score.TierOf(state.Result.Score)

	result := gin.H{
		"score":         state.Result.Score,
		"tier":          tier,
		"label":         utils.TierLabel(lang, tier),
		"reasons":       state.Result.Reasons,
		"factors":       state.Result.Factors,
		"factors_title": utils.Localize(lang, "result_factors_title"),
		"zone":          state.Assessment.DetectedZoneName,
		"language":      lang,
	}

	if len(state.Result.Reasons) == 0 {
		result["message"] = utils.Localize(lang, "result_no_factors")
	}

	// only a location found in the current run is described
	if state.Geo.Status == wizard.GeoFound && state.Geo.Location != nil && s.resolver != nil {
		place, err := s.resolver.GetPoliticalInfo(c.Request.Context(), *state.Geo.Location)
		if err != nil {
			log.WithField("api", "assessmentResult").WithError(err).Warn("resolve place")
		} else {
			result["place"] = gin.H{
				"address": place.Address,
				"county":  place.County,
				"country": place.Country,
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
	})
}

func (s *Server) listZones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"result": s.zones,
	})
}
