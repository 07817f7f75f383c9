package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/config"
	"github.com/hounds-game/hounds/internal/logger"
	"github.com/hounds-game/hounds/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	host := flag.String("host", "", "监听地址，覆盖配置文件")
	port := flag.Int("port", 0, "监听端口，覆盖配置文件")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		if err := config.ValidatePort(*port); err != nil {
			log.Fatal().Err(err).Msg("无效的端口号")
		}
		cfg.Server.Port = *port
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("初始化日志失败")
	}
	defer logger.Close()

	// 创建服务器
	srv := server.New(cfg)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("正在关闭服务器...")
		srv.Shutdown()
		os.Exit(0)
	}()

	log.Info().Str("addr", cfg.Server.Addr()).Msg("🐾 猎犬棋服务器启动中...")
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
}
