package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
)

var (
	browsers   = []string{"chrome", "firefox", "safari", "edge"}
	platforms  = []string{"windows", "macos", "linux", "android"}
	themes     = []string{"dark", "light", "auto"}
	languages  = []string{"en", "es", "fr", "de", "ja"}
	actions    = []string{"click", "hover", "drag", "scroll", "keypress", "select", "update"}
	eventTypes = []string{"mouse", "keyboard", "touch", "gesture"}
	netTypes   = []string{"slow-2g", "2g", "3g", "4g"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
	}
)

type record struct {
	ID        string        `json:"id"`
	Timestamp int64         `json:"timestamp"`
	Type      string        `json:"type"`
	Version   string        `json:"version"`
	Data      recordData    `json:"data"`
	Context   recordContext `json:"context"`
	Metadata  metadata      `json:"metadata"`
	Analytics analytics     `json:"analytics"`
}

type recordData struct {
	Coordinates struct {
		X       int `json:"x"`
		Y       int `json:"y"`
		Screen  int `json:"screen"`
		ScrollX int `json:"scrollX"`
		ScrollY int `json:"scrollY"`
	} `json:"coordinates"`
	Element struct {
		ID         string            `json:"id"`
		ClassName  string            `json:"className"`
		TagName    string            `json:"tagName"`
		InnerText  string            `json:"innerText"`
		Attributes map[string]string `json:"attributes"`
	} `json:"element"`
	Action    string `json:"action"`
	EventType string `json:"eventType"`
	Payload   struct {
		KeyCode   *int            `json:"keyCode"`
		Button    *int            `json:"button"`
		Modifiers map[string]bool `json:"modifiers"`
		Pressure  float64         `json:"pressure"`
		TiltX     float64         `json:"tiltX"`
		TiltY     float64         `json:"tiltY"`
	} `json:"payload"`
	Performance struct {
		LoadTime    float64 `json:"loadTime"`
		RenderTime  float64 `json:"renderTime"`
		MemoryUsage int     `json:"memoryUsage"`
		CPUUsage    float64 `json:"cpuUsage"`
	} `json:"performance"`
}

type recordContext struct {
	SessionID  string `json:"sessionId"`
	UserID     string `json:"userId"`
	PageID     string `json:"pageId"`
	RequestID  string `json:"requestId"`
	ClientInfo struct {
		Browser          string `json:"browser"`
		Version          string `json:"version"`
		Platform         string `json:"platform"`
		UserAgent        string `json:"userAgent"`
		ScreenResolution string `json:"screenResolution"`
		ColorDepth       int    `json:"colorDepth"`
		PixelRatio       int    `json:"pixelRatio"`
		Timezone         string `json:"timezone"`
		Language         string `json:"language"`
		CookiesEnabled   bool   `json:"cookiesEnabled"`
		LocalStorage     bool   `json:"localStorage"`
		SessionStorage   bool   `json:"sessionStorage"`
	} `json:"clientInfo"`
	Preferences struct {
		Theme         string          `json:"theme"`
		Language      string          `json:"language"`
		Timezone      string          `json:"timezone"`
		Notifications bool            `json:"notifications"`
		AutoSave      bool            `json:"autoSave"`
		Accessibility map[string]bool `json:"accessibility"`
	} `json:"preferences"`
	Network struct {
		ConnectionType string  `json:"connectionType"`
		EffectiveType  string  `json:"effectiveType"`
		Downlink       float64 `json:"downlink"`
		RTT            float64 `json:"rtt"`
	} `json:"network"`
}

type metadata struct {
	Source       string   `json:"source"`
	Priority     string   `json:"priority"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Version      string   `json:"version"`
	BuildNumber  int      `json:"buildNumber"`
	Environment  string   `json:"environment"`
	DeploymentID string   `json:"deploymentId"`
}

type analytics struct {
	PageViews       int     `json:"pageViews"`
	SessionDuration int     `json:"sessionDuration"`
	BounceRate      float64 `json:"bounceRate"`
	ConversionRate  float64 `json:"conversionRate"`
	UserEngagement  struct {
		Clicks     int `json:"clicks"`
		Scrolls    int `json:"scrolls"`
		TimeOnPage int `json:"timeOnPage"`
	} `json:"userEngagement"`
}

type batch struct {
	MessageID int64    `json:"messageId"`
	Timestamp int64    `json:"timestamp"`
	Type      string   `json:"type"`
	Version   string   `json:"version"`
	BatchSize int      `json:"batchSize"`
	Records   []record `json:"records"`
	Summary   struct {
		TotalRecords     int     `json:"totalRecords"`
		AverageLoadTime  float64 `json:"averageLoadTime"`
		TotalMemoryUsage int     `json:"totalMemoryUsage"`
		UniqueUsers      int     `json:"uniqueUsers"`
		UniqueSessions   int     `json:"uniqueSessions"`
	} `json:"summary"`
}

const (
	jsonTargetSize = 100000
	jsonMaxRecords = 200
)

func (g *Generator) coin() bool { return g.Rand.Float64() > 0.5 }

func (g *Generator) pick(s []string) string { return s[g.Rand.Intn(len(s))] }

func (g *Generator) either(a, b string) string {
	if g.coin() {
		return a
	}
	return b
}

func (g *Generator) timezone() string {
	return "UTC" + g.either("+", "-") + strconv.Itoa(g.Rand.Intn(12))
}

func (g *Generator) maybe(n int) *int {
	if !g.coin() {
		return nil
	}
	v := g.Rand.Intn(n)
	return &v
}

func (g *Generator) record(msg, n int) record {
	r := g.Rand
	now := g.Now().UnixMilli()

	var rec record
	rec.ID = fmt.Sprintf("record_%d_%d_%d", msg, n, r.Intn(1000000))
	rec.Timestamp = now + r.Int63n(86400000)
	rec.Type = g.either("interaction", "system")
	rec.Version = "1.2." + strconv.Itoa(r.Intn(20))

	d := &rec.Data
	d.Coordinates.X = r.Intn(1920)
	d.Coordinates.Y = r.Intn(1080)
	d.Coordinates.Screen = r.Intn(2) + 1
	d.Coordinates.ScrollX = r.Intn(1000)
	d.Coordinates.ScrollY = r.Intn(1000)
	d.Element.ID = "element_" + strconv.Itoa(r.Intn(1000))
	d.Element.ClassName = "btn btn-" + g.either("primary", "secondary") + " " + g.either("active", "inactive")
	d.Element.TagName = g.either("button", "div")
	d.Element.InnerText = "Button " + strconv.Itoa(r.Intn(100))
	d.Element.Attributes = map[string]string{
		"data-testid": "test-" + strconv.Itoa(r.Intn(1000)),
		"aria-label":  "Button " + strconv.Itoa(r.Intn(100)),
		"role":        g.either("button", "link"),
	}
	d.Action = g.pick(actions)
	d.EventType = g.pick(eventTypes)
	d.Payload.KeyCode = g.maybe(100)
	d.Payload.Button = g.maybe(3)
	d.Payload.Modifiers = map[string]bool{
		"ctrl":  g.coin(),
		"shift": g.coin(),
		"alt":   g.coin(),
		"meta":  g.coin(),
	}
	d.Payload.Pressure = r.Float64()
	d.Payload.TiltX = r.Float64()*2 - 1
	d.Payload.TiltY = r.Float64()*2 - 1
	d.Performance.LoadTime = r.Float64() * 1000
	d.Performance.RenderTime = r.Float64() * 500
	d.Performance.MemoryUsage = r.Intn(1000000)
	d.Performance.CPUUsage = r.Float64() * 100

	c := &rec.Context
	c.SessionID = "session_" + strconv.Itoa(r.Intn(1000000))
	c.UserID = "user_" + strconv.Itoa(r.Intn(100000))
	c.PageID = "page_" + strconv.Itoa(r.Intn(10000))
	c.RequestID = "req_" + strconv.Itoa(r.Intn(1000000))
	c.ClientInfo.Browser = g.pick(browsers)
	c.ClientInfo.Version = "1.2." + strconv.Itoa(r.Intn(100))
	c.ClientInfo.Platform = g.pick(platforms)
	c.ClientInfo.UserAgent = g.pick(userAgents)
	c.ClientInfo.ScreenResolution = fmt.Sprintf("%dx%d", 1920+r.Intn(1000), 1080+r.Intn(1000))
	c.ClientInfo.ColorDepth = 24
	if g.coin() {
		c.ClientInfo.ColorDepth = 32
	}
	c.ClientInfo.PixelRatio = 1 + r.Intn(2)
	c.ClientInfo.Timezone = g.timezone()
	c.ClientInfo.Language = g.pick(languages)
	c.ClientInfo.CookiesEnabled = g.coin()
	c.ClientInfo.LocalStorage = g.coin()
	c.ClientInfo.SessionStorage = g.coin()
	c.Preferences.Theme = g.pick(themes)
	c.Preferences.Language = g.pick(languages)
	c.Preferences.Timezone = g.timezone()
	c.Preferences.Notifications = g.coin()
	c.Preferences.AutoSave = g.coin()
	c.Preferences.Accessibility = map[string]bool{
		"highContrast":  g.coin(),
		"reducedMotion": g.coin(),
		"screenReader":  g.coin(),
	}
	c.Network.ConnectionType = g.either("wifi", "cellular")
	c.Network.EffectiveType = g.pick(netTypes)
	c.Network.Downlink = r.Float64() * 100
	c.Network.RTT = r.Float64() * 100

	m := &rec.Metadata
	m.Source = g.either("client", "server")
	m.Priority = g.either("high", "normal")
	m.Category = g.either("user", "system")
	m.Tags = []string{"web", "interaction", "analytics", "performance", "accessibility"}
	m.Version = "2.1." + strconv.Itoa(r.Intn(10))
	m.BuildNumber = r.Intn(1000)
	m.Environment = g.either("production", "development")
	m.DeploymentID = "deploy_" + strconv.Itoa(r.Intn(1000000))

	a := &rec.Analytics
	a.PageViews = r.Intn(1000)
	a.SessionDuration = r.Intn(3600)
	a.BounceRate = r.Float64()
	a.ConversionRate = r.Float64()
	a.UserEngagement.Clicks = r.Intn(100)
	a.UserEngagement.Scrolls = r.Intn(500)
	a.UserEngagement.TimeOnPage = r.Intn(300)

	return rec
}

// jsonMessage builds a batch of records about jsonTargetSize bytes long.
func (g *Generator) jsonMessage(msg int) ([]byte, error) {
	var b batch
	size := 0
	for size < jsonTargetSize && len(b.Records) < jsonMaxRecords {
		rec := g.record(msg, len(b.Records))
		enc, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("stats: encoding record: %w", err)
		}
		size += len(enc)
		b.Records = append(b.Records, rec)
	}

	b.MessageID = g.Rand.Int63n(1000000)
	b.Timestamp = g.Now().UnixMilli() + g.Rand.Int63n(1000)
	b.Type = g.either("batch_interaction", "system_update")
	b.Version = "1.2." + strconv.Itoa(g.Rand.Intn(20))
	b.BatchSize = len(b.Records)

	users := make(map[string]struct{})
	sessions := make(map[string]struct{})
	var loadTime float64
	for _, rec := range b.Records {
		loadTime += rec.Data.Performance.LoadTime
		b.Summary.TotalMemoryUsage += rec.Data.Performance.MemoryUsage
		users[rec.Context.UserID] = struct{}{}
		sessions[rec.Context.SessionID] = struct{}{}
	}
	b.Summary.TotalRecords = len(b.Records)
	b.Summary.AverageLoadTime = loadTime / float64(len(b.Records))
	b.Summary.UniqueUsers = len(users)
	b.Summary.UniqueSessions = len(sessions)

	enc, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("stats: encoding batch: %w", err)
	}
	return enc, nil
}
