package sns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/imnatewest/ai-fridge-app/internal/config"
)

// PushSender delivers mobile push notifications through SNS platform endpoints.
type PushSender interface {
	// RegisterEndpoint creates (or refreshes) a platform endpoint for a device
	// push token and returns its ARN.
	RegisterEndpoint(ctx context.Context, platform, token string) (string, error)
	// Publish sends one notification to an endpoint ARN.
	Publish(ctx context.Context, endpointARN, title, body string, data map[string]string) error
}

type sender struct {
	client  *sns.Client
	fcmARN  string
	apnsARN string
}

func NewSender(cfg *config.Config) (PushSender, error) {
	if cfg.SNSFCMPlatformARN == "" && cfg.SNSAPNSPlatformARN == "" {
		return nil, errors.New("no SNS platform application ARN configured")
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	return &sender{
		client:  sns.NewFromConfig(awsCfg),
		fcmARN:  cfg.SNSFCMPlatformARN,
		apnsARN: cfg.SNSAPNSPlatformARN,
	}, nil
}

func (s *sender) platformARN(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android":
		if s.fcmARN == "" {
			return "", errors.New("SNS FCM platform ARN not configured")
		}
		return s.fcmARN, nil
	case "ios":
		if s.apnsARN != "" {
			return s.apnsARN, nil
		}
		// iOS tokens routed through FCM when no direct APNS application exists.
		if s.fcmARN == "" {
			return "", errors.New("no platform ARN configured for ios")
		}
		return s.fcmARN, nil
	default:
		return "", fmt.Errorf("unknown platform %q", platform)
	}
}

func (s *sender) RegisterEndpoint(ctx context.Context, platform, token string) (string, error) {
	arn, err := s.platformARN(platform)
	if err != nil {
		return "", err
	}
	out, err := s.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(arn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return "", fmt.Errorf("create platform endpoint: %w", err)
	}
	return aws.ToString(out.EndpointArn), nil
}

func (s *sender) Publish(ctx context.Context, endpointARN, title, body string, data map[string]string) error {
	payload, err := buildPayload(title, body, data)
	if err != nil {
		return err
	}
	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TargetArn:        aws.String(endpointARN),
		Message:          aws.String(payload),
		MessageStructure: aws.String("json"),
	})
	return err
}

// buildPayload renders the platform-specific message envelope SNS expects
// when MessageStructure is "json".
func buildPayload(title, body string, data map[string]string) (string, error) {
	fcm, err := json.Marshal(map[string]interface{}{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	if err != nil {
		return "", err
	}
	apns, err := json.Marshal(map[string]interface{}{
		"aps":  map[string]interface{}{"alert": map[string]string{"title": title, "body": body}},
		"data": data,
	})
	if err != nil {
		return "", err
	}
	msg, err := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(fcm),
		"APNS":    string(apns),
	})
	if err != nil {
		return "", err
	}
	return string(msg), nil
}
