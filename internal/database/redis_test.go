package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/keyxmakerx/campaignlog/internal/config"
)

func TestNewRedis_ConnectsAndSetsTimeouts(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.RedisConfig{URL: "redis://" + mr.Addr(), CampaignCacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET through client: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("miniredis value = %q, want v", got)
	}

	opts := client.Options()
	if opts.ReadTimeout != redisIOTimeout || opts.WriteTimeout != redisIOTimeout {
		t.Errorf("timeouts = %v/%v, want %v", opts.ReadTimeout, opts.WriteTimeout, redisIOTimeout)
	}
}

func TestNewRedis_Errors(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"empty url", ""},
		{"bad scheme", "http://" + addr},
		{"server down", "redis://" + addr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewRedis(config.RedisConfig{URL: tt.url})
			if err == nil {
				client.Close()
				t.Fatalf("NewRedis(%q) error = nil, want error", tt.url)
			}
		})
	}
}
