package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"astroplan/internal/planner"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher pushes observability telemetry to an MQTT broker so external
// automations (dome controllers, dashboards) can react to sky conditions.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	enabled     bool
}

type PublisherConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	Enabled     bool
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return &Publisher{enabled: false}, nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			log.Printf("MQTT connection lost: %v", err)
		}).
		SetOnConnectHandler(func(c mqtt.Client) {
			log.Println("MQTT connected")
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
		enabled:     true,
	}, nil
}

// Publish sends the plan's score and metrics as individual scalar topics
// plus a retained JSON status topic per target.
func (p *Publisher) Publish(plan *planner.Plan) error {
	if !p.enabled {
		return nil
	}

	clouds := "unknown"
	if plan.Metrics.CloudCoverPct != nil {
		clouds = fmt.Sprintf("%.0f", *plan.Metrics.CloudCoverPct)
	}

	topics := map[string]interface{}{
		"score":           plan.Recommendation.Score,
		"ok":              plan.Recommendation.OK,
		"target_altitude": plan.Metrics.TargetAltitudeDeg,
		"sun_altitude":    plan.Metrics.SunAltitudeDeg,
		"moon_separation": plan.Metrics.MoonTargetSeparationDeg,
		"cloud_cover":     clouds,
	}

	for name, value := range topics {
		topic := fmt.Sprintf("%s/%s/%s", p.topicPrefix, plan.Target, name)
		payload := fmt.Sprintf("%v", value)
		token := p.client.Publish(topic, 0, false, payload)
		token.Wait()
		if token.Error() != nil {
			log.Printf("Failed to publish to %s: %v", topic, token.Error())
		}
	}

	statusJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	statusTopic := fmt.Sprintf("%s/%s/status", p.topicPrefix, plan.Target)
	token := p.client.Publish(statusTopic, 0, true, statusJSON)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish status: %w", token.Error())
	}

	return nil
}

func (p *Publisher) Close() {
	if p.enabled && p.client != nil {
		p.client.Disconnect(250)
	}
}
