package http

import (
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/dynamo"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/google"
	jwtinfra "github.com/imnatewest/ai-fridge-app/internal/infrastructure/jwt"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/openai"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/openfoodfacts"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/pexels"
	s3infra "github.com/imnatewest/ai-fridge-app/internal/infrastructure/s3"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/smtp"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router. Optional
// integrations (JWTProvider, PushSender, GoogleVerifier, OpenAI, Pexels) may
// be nil; the affected endpoints degrade instead of the server refusing to
// start.
type Deps struct {
	UserRepo     *dynamo.UserRepo
	SessionRepo  *dynamo.SessionRepo
	DeviceRepo   *dynamo.DeviceRepo
	ItemRepo     *dynamo.ItemRepo
	ReminderRepo *dynamo.ReminderRepo
	LocationRepo *dynamo.LocationRepo

	S3Store        *s3infra.Store
	Mailer         smtp.Mailer
	PushSender     sns.PushSender
	JWTProvider    *jwtinfra.Provider
	GoogleVerifier *google.Verifier
	ProductClient  *openfoodfacts.Client
	OpenAI         *openai.Client
	Pexels         *pexels.Client
}
