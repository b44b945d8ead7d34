package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/schisto-api/schema"
	"github.com/bitmark-inc/schisto-api/store"
)

func currentProfile(c *gin.Context) (*schema.Profile, bool) {
	profile, ok := c.MustGet("profile").(*schema.Profile)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	}
	return profile, ok
}

func (s *Server) profileJSON(p *schema.Profile) gin.H {
	result := gin.H{
		"profile":           p,
		"free_prompt_limit": s.freePromptLimit,
	}

	if !p.IsPremium {
		remaining := s.freePromptLimit - p.PromptCount
		if remaining < 0 {
			remaining = 0
		}
		result["remaining_prompts"] = remaining
	}

	return result
}

// profileDetail is the API to query the profile and usage of a user
func (s *Server) profileDetail(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": s.profileJSON(profile),
	})
}

// profileUpgrade is the API to subscribe a user to a premium plan
func (s *Server) profileUpgrade(c *gin.Context) {
	logger := log.WithField("api", "profileUpgrade")
	requester := c.GetString("requester")

	var params struct {
		Plan string `json:"plan" binding:"required"`
	}

	if err := c.BindJSON(&params); err != nil {
		logger.WithError(err).Error(errorInvalidParameters.Message)
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	if !schema.ValidPlan(params.Plan) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidPlan)
		return
	}

	profile, err := s.store.UpgradeProfile(requester, params.Plan)
	switch err {
	case nil:
	case store.ErrInvalidPlan:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidPlan)
		return
	case store.ErrProfileNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorProfileNotFound)
		return
	default:
		shouldInterupt(err, c)
		return
	}

	logger.WithField("plan", params.Plan).Info("profile upgraded")
	c.JSON(http.StatusOK, gin.H{
		"result": s.profileJSON(profile),
	})
}
