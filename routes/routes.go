// routes/routes.go
package routes

import (
	"net/http"

	"startup-registration/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, startupController *controllers.StartupController, paymentController *controllers.PaymentController, uploadController *controllers.UploadController, metricsHandler http.Handler) {
	router.HandleFunc("/", startupController.Home).Methods("GET")

	// Registration routes
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/startup", startupController.Submit).Methods("POST")
	api.HandleFunc("/startups", startupController.GetStartups).Methods("GET")
	api.HandleFunc("/registration-status", startupController.RegistrationStatus).Methods("GET")

	// Payment routes
	payment := api.PathPrefix("/payment").Subrouter()
	payment.HandleFunc("/verify-email", paymentController.VerifyEmail).Methods("POST")
	payment.HandleFunc("/order", paymentController.CreateOrder).Methods("POST")
	payment.HandleFunc("/verify", paymentController.VerifyPayment).Methods("POST")

	// Uploaded files
	router.HandleFunc("/uploads/{dir:videos|pilotEvidence}/{name}", uploadController.Serve).Methods("GET")

	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods("GET")
	}
}
