package rabbitmq_wrapper

import (
	"fmt"

	"github.com/cenkalti/backoff"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type RabbitConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	ExchangeName  string `yaml:"exchange_name"`
	PrefetchCount int    `yaml:"prefetch_count"`
}

func (cfg *RabbitConfig) URL() string {
	port := cfg.Port
	if port == 0 {
		port = 5672
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.Username, cfg.Password, cfg.Host, port)
}

// InitRabbit dial the broker from config
func InitRabbit(cfg *RabbitConfig) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		zap.S().Debugf("dial rabbitmq fail: %+v", err)
		return nil, err
	}

	zap.S().Debug("connect to rabbitmq successful")
	return conn, nil
}

// InitRabbitWithBackoff dial the broker use backoff
func InitRabbitWithBackoff(cfg *RabbitConfig) *amqp.Connection {
	var conn *amqp.Connection
	boff := backoff.NewExponentialBackOff()
	err := backoff.Retry(func() error {
		var err error
		conn, err = InitRabbit(cfg)
		if err != nil {
			fmt.Printf("Connect rabbitmq error %s \n", err.Error())
		}
		return err
	}, boff)
	if err != nil {
		panic(err)
	}

	return conn
}
