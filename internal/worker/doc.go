// Package worker implements the render worker lifecycle and Redis Streams integration.
//
// The worker subscribes to a Redis stream of render requests, renders each one
// through a fresh view, and publishes the output to a result stream.
//
// A request is a JSON document in the message's "data" field:
//
//	{
//	  "request_id": "3f0c...",          // generated when empty
//	  "template":   "user/card",
//	  "data":       {"username": "ada"},
//	  "data_key":   "site-defaults",    // optional, loads view:data:site-defaults first
//	  "locale":     "de"                // optional, drives the trans helpers
//	}
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	views := view.NewFactory(cfg.TemplateRoot, view.WithLogger(logger))
//	renderer := worker.NewRequestRenderer(views, worker.NewRedisDataStore(redisClient, cfg.DataKeyPrefix), logger)
//
//	w := worker.NewWorker(cfg, redisClient, renderer, logger)
//	if err := w.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
// The worker handles:
//   - Redis Streams subscription and consumer group management
//   - Render request processing
//   - Result publishing, retried with exponential backoff
//   - Error event publishing to <result stream>.errors
//   - Graceful shutdown
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8083, redisClient, cfg.TemplateRoot, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
