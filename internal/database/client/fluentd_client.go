package client

import (
	"context"
	"time"

	"orgchart/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

const defaultFluentdTagPrefix = "orgchart"

// Client request/response/build log 的送出端
type Client interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

// FluentdClient 以 fluent-logger-golang 非同步送出
type FluentdClient struct {
	client    *fluent.Fluent
	tagPrefix string
}

// NewFluentdClient 未設定 host 時回傳 NoopClient
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	if config.Fluentd.Host == "" {
		logger.Info("fluentd host not configured, shipping logs disabled")
		return &NoopClient{}, func() {}, nil
	}

	fluentConf := fluentConfig(config)
	f, err := fluent.New(fluentConf)
	if err != nil {
		logger.Error("failed to create fluentd client", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("fluentd client ready",
		zap.String("host", fluentConf.FluentHost),
		zap.Int("port", fluentConf.FluentPort),
		zap.String("tagPrefix", fluentConf.TagPrefix),
	)

	fluentdClient := &FluentdClient{client: f, tagPrefix: fluentConf.TagPrefix}
	cleanup := func() {
		logger.Info("closing the Fluentd resources")
		if err := fluentdClient.Close(); err != nil {
			logger.Error("failed to close Fluentd client", zap.Error(err))
		}
	}
	return fluentdClient, cleanup, nil
}

func fluentConfig(config *config.Configuration) fluent.Config {
	conf := fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		TagPrefix:  config.Fluentd.TagPrefix,
		MaxRetry:   config.Fluentd.MaxRetry,
		Async:      true,
	}
	if conf.TagPrefix == "" {
		conf.TagPrefix = defaultFluentdTagPrefix
	}
	if config.Fluentd.Timeout > 0 {
		conf.Timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}
	return conf
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Post 送出前檢查 ctx；fluent-logger 本身不支援取消
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Post(tag, message)
}

// NoopClient 未設定 fluentd 時使用
type NoopClient struct{}

func (n *NoopClient) Post(context.Context, string, any) error { return nil }
func (n *NoopClient) Close() error                            { return nil }
