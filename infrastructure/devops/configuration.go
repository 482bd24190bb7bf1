package devops

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// MailConfig is the mail dispatch configuration stored as YAML in the
// "timeclock/mail" SSM parameter:
//
//	from: timeclock@example.com
//	recipients:
//	  - manager@example.com
//	sendAt: "23:36"
type MailConfig struct {
	From       string   `yaml:"from"`
	Recipients []string `yaml:"recipients"`
	SendAt     string   `yaml:"sendAt"`
}

var (
	once    sync.Once
	mail    *MailConfig
	loadErr error
)

// LoadMailConfig fetches and caches the mail configuration from SSM.
func LoadMailConfig(ctx context.Context) (*MailConfig, error) {
	once.Do(func() {
		paramName := "timeclock/mail"

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed MailConfig
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		mail = &parsed
	})

	return mail, loadErr
}
