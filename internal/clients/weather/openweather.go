package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

// Provider fetches the current day's weather for a region.
type Provider interface {
	Today(ctx context.Context, region string, lat, lon float64) (*types.WeatherSnapshot, error)
}

type openWeatherProvider struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOpenWeatherProvider(log *logger.Logger) (Provider, error) {
	apiKey := utils.GetEnv("OPENWEATHER_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENWEATHER_API_KEY")
	}
	baseURL := utils.GetEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org", log)
	timeoutSec := utils.GetEnvAsInt("OPENWEATHER_TIMEOUT_SECONDS", 5, log)

	return &openWeatherProvider{
		log:        log.With("client", "OpenWeatherProvider"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type currentWeatherDto struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
}

func (p *openWeatherProvider) Today(ctx context.Context, region string, lat, lon float64) (*types.WeatherSnapshot, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("units", "metric")
	q.Set("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather http %d: %s", resp.StatusCode, string(raw))
	}

	var dto currentWeatherDto
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	sky := ""
	if len(dto.Weather) > 0 {
		sky = dto.Weather[0].Main
	}

	return &types.WeatherSnapshot{
		Region:        region,
		AvgTemp:       dto.Main.Temp,
		MinTemp:       dto.Main.TempMin,
		MaxTemp:       dto.Main.TempMax,
		FeelsLikeTemp: dto.Main.FeelsLike,
		Humidity:      dto.Main.Humidity,
		WindSpeed:     dto.Wind.Speed,
		CloudAmount:   dto.Clouds.All,
		Sky:           sky,
	}, nil
}
