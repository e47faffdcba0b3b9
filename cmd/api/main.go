package main

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"investilearn/pkg/api/feedback"
	apiguide "investilearn/pkg/api/guide"
	"investilearn/pkg/api/research"
	"investilearn/pkg/core/fetch"
	coreguide "investilearn/pkg/core/guide"
	"investilearn/pkg/core/llm"
)

type serverConfig struct {
	Addr         string `yaml:"addr"`
	GatewayURL   string `yaml:"gateway_url"`
	CacheTTLMins int    `yaml:"cache_ttl_minutes"`
	RedisAddr    string `yaml:"redis_addr"`
	NewsMax      int    `yaml:"news_max"`
	GuideModel   string `yaml:"guide_model"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := serverConfig{
		Addr:         ":8080",
		GatewayURL:   "http://localhost:6900",
		CacheTTLMins: 60,
		NewsMax:      5,
	}
	if data, err := ioutil.ReadFile("config/config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] Bad config/config.yaml, using defaults: %v\n", err)
		}
	} else {
		fmt.Println("[CONFIG] config/config.yaml not found, using defaults")
	}

	// Cache: Redis when configured and reachable, in-memory otherwise.
	var cache fetch.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := fetch.NewRedisCache(cfg.RedisAddr)
		if err != nil {
			fmt.Printf("[WARNING] Redis unavailable (%v), using in-memory cache\n", err)
		} else {
			fmt.Printf("[CACHE] Using Redis at %s\n", cfg.RedisAddr)
			cache = redisCache
		}
	}
	if cache == nil {
		cache = fetch.NewMemoryCache()
	}

	client := fetch.NewClient(cfg.GatewayURL, nil)
	fetcher := fetch.NewCachingFetcher(client, cache, time.Duration(cfg.CacheTTLMins)*time.Minute)

	// Guide: LLM-backed when a Gemini key is present, static otherwise.
	var provider llm.Provider
	if os.Getenv("GEMINI_API_KEY") != "" {
		provider = &llm.GeminiProvider{Model: cfg.GuideModel}
		fmt.Println("[GUIDE] Gemini provider enabled")
	} else {
		fmt.Println("[GUIDE] GEMINI_API_KEY not set, using static explanations")
	}
	explainer := coreguide.NewExplainer(provider, cfg.GuideModel)

	// Research endpoints
	research.InitHandler(fetcher, cfg.NewsMax)
	http.HandleFunc("/api/research/report", research.HandleReport)

	// Guide endpoints
	apiguide.InitHandler(explainer)
	http.HandleFunc("/api/guide/explain", apiguide.HandleExplain)

	// Feedback endpoints
	http.HandleFunc("/api/feedback/record", feedback.HandleRecord)
	http.HandleFunc("/api/feedback/count", feedback.HandleCount)

	fmt.Printf("API server starting on %s...\n", cfg.Addr)
	fmt.Println("  - POST /api/research/report")
	fmt.Println("  - POST /api/guide/explain")
	fmt.Println("  - POST /api/feedback/record")
	fmt.Println("  - GET  /api/feedback/count")

	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
