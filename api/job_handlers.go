package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReloadHandler starts a background rebuild of the index from the recipe source
func (api *API) ReloadHandler(c *gin.Context) {
	if api.source == nil {
		SendError(c, http.StatusServiceUnavailable, ErrorCodeReloadUnavailable,
			"No recipe source is configured for reloading")
		return
	}

	jobID, err := api.engine.ReloadAsync(api.source)
	if err != nil {
		SendJobExecutionError(c, "reload", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Index reload started",
		"job_id":  jobID,
	})
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")
	if validation := ValidateID("jobId", jobID); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	job, err := api.engine.GetJob(jobID)
	if err != nil {
		SendErrorFromErr(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}
