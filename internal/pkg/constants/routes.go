package constants

// Static route constants
const (
	APIRoute             = "/api"
	CheckoutWebhookRoute = "/api/webhook/checkout"
	DeployRoute          = "/deploy"
	FeedbackRoute        = "/feedback"
	MetricsRoute         = "/metrics"
)
