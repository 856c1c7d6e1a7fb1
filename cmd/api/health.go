package main

import "net/http"

type healthResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"DilJourney API is running"`
	Version string `json:"version" example:"1.0.0"`
	Status  string `json:"status" example:"OK"`
	Env     string `json:"env" example:"development"`
	Store   string `json:"store" example:"mongo"`
}

// healthCheckHandler godoc
//
//	@Summary		Health check
//	@Description	Reports that the API is up, with its version and store backend.
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	healthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := healthResponse{
		Success: true,
		Message: "DilJourney API is running",
		Version: version,
		Status:  "OK",
		Env:     app.config.env,
		Store:   app.store.Driver,
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
