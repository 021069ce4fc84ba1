package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	chatx "github.com/maticstudio/chat-agent/agent/chat"
	toolx "github.com/maticstudio/chat-agent/agent/tool"
	"github.com/maticstudio/chat-agent/pkg/calendly"
	configx "github.com/maticstudio/chat-agent/pkg/config"
	_ "github.com/maticstudio/chat-agent/pkg/logger/autoload"
	"github.com/maticstudio/chat-agent/pkg/openaix"
	"github.com/maticstudio/chat-agent/server"
	"github.com/maticstudio/chat-agent/store"
)

func main() {
	openaiCfg := configx.MustNew[openaix.Config]("OPENAI")
	calendlyCfg := configx.MustNew[calendly.Config]("CALENDLY")
	storeCfg := configx.MustNew[store.Config]("DATABASE")
	serverCfg := configx.MustNew[server.Config]("SERVER")

	if err := openaiCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("openai config")
	}
	client := openaix.NewClient(*openaiCfg)

	var meetingOpts []toolx.MeetingOption
	if calendlyCfg.Configured() {
		linker, err := calendly.NewClient(*calendlyCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("calendly config")
		}
		meetingOpts = append(meetingOpts, toolx.WithSchedulingLinker(linker))
		log.Info().Msg("calendly scheduling links enabled")
	}

	leads, err := store.NewManager(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database config")
	}
	if leads == nil {
		log.Warn().Msg("no database configured, conversations and leads will not be persisted")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := leads.CreateSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("schema setup failed, persistence degraded")
		}
		cancel()
		defer leads.Close()
	}

	sessions := server.NewSessionManager(func() (*chatx.Agent, error) {
		return chatx.NewScheduling(&client.Chat.Completions, *openaiCfg, meetingOpts...)
	})

	srv := server.New(*serverCfg, sessions, leads)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
	log.Info().Msg("server stopped")
}
