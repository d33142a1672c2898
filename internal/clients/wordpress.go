package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"lablink/internal/models"
)

const perPageQuery = "per_page=100"

// WordPressClient reads the lab catalog from WordPress custom post types and
// authenticates partners through the JWT auth plugin.
type WordPressClient struct {
	c *Client
}

// NewWordPressClient creates a WordPressClient. baseURL is the wp-json root.
func NewWordPressClient(c *Client) *WordPressClient {
	return &WordPressClient{c: c}
}

// wpRendered is WordPress's {"rendered": "..."} wrapper.
type wpRendered struct {
	Rendered string `json:"rendered"`
}

// wpPost is the subset of a custom post type record the catalog uses.
type wpPost struct {
	ID      int64      `json:"id"`
	Title   wpRendered `json:"title"`
	Content wpRendered `json:"content"`
	Excerpt wpRendered `json:"excerpt"`
	ACF     wpFields   `json:"acf"`
}

// wpFields holds ACF custom fields. WordPress returns numbers as either
// strings or numbers, and an empty field set as [] instead of {}.
type wpFields map[string]any

func (f *wpFields) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "{") {
		*f = nil
		return nil
	}
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*f = m
	return nil
}

func (f wpFields) String(key string) string {
	switch v := f[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (f wpFields) Number(key string) (float64, bool) {
	s := f.String(key)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// FetchTests lists lab tests.
func (w *WordPressClient) FetchTests(ctx context.Context) ([]models.CatalogItem, error) {
	return w.fetchLab(ctx, "/wp/v2/tests", models.KindTest)
}

// FetchScans lists imaging scans.
func (w *WordPressClient) FetchScans(ctx context.Context) ([]models.CatalogItem, error) {
	return w.fetchLab(ctx, "/wp/v2/scans", models.KindScan)
}

// FetchPackages lists health packages.
func (w *WordPressClient) FetchPackages(ctx context.Context) ([]models.CatalogItem, error) {
	return w.fetchLab(ctx, "/wp/v2/packages", models.KindPackage)
}

// FetchDoctors lists doctors.
func (w *WordPressClient) FetchDoctors(ctx context.Context) ([]models.CatalogItem, error) {
	var posts []wpPost
	if err := w.c.DoJSON(ctx, http.MethodGet, "/wp/v2/doctor", perPageQuery, nil, &posts, nil); err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}
	items := make([]models.CatalogItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, mapDoctor(p))
	}
	return items, nil
}

func (w *WordPressClient) fetchLab(ctx context.Context, path string, kind models.Kind) ([]models.CatalogItem, error) {
	var posts []wpPost
	if err := w.c.DoJSON(ctx, http.MethodGet, path, perPageQuery, nil, &posts, nil); err != nil {
		return nil, fmt.Errorf("failed to fetch %ss: %w", kind, err)
	}
	items := make([]models.CatalogItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, mapLabItem(p, kind))
	}
	return items, nil
}

const (
	defaultPrice       = 1000
	defaultCenter      = "Main Lab"
	defaultRating      = 4.8
	defaultReviews     = 120
	defaultReportTime  = "24 Hours"
	defaultLocation    = "Central"
	defaultImageURL    = "https://picsum.photos/400/200"
	shortDescriptionSz = 100
)

func mapLabItem(p wpPost, kind models.Kind) models.CatalogItem {
	price := int64(defaultPrice)
	if n, ok := p.ACF.Number("price"); ok {
		price = int64(math.Round(n))
	}
	mrp := int64(math.Round(float64(price) * 1.2))
	if n, ok := p.ACF.Number("mrp"); ok {
		mrp = int64(math.Round(n))
	}
	reportTime := orDefault(p.ACF.String("report_time"), defaultReportTime)

	title := stripHTML(p.Title.Rendered)
	description := orDefault(stripHTML(p.Content.Rendered), title)
	short := stripHTML(p.Excerpt.Rendered)
	if short == "" {
		short = truncate(description, shortDescriptionSz)
	}

	category := p.ACF.String("category")
	if category == "" {
		category = "General"
		if kind == models.KindScan {
			category = "Scans"
		}
	}

	return models.CatalogItem{
		ID:               strconv.FormatInt(p.ID, 10),
		Kind:             kind,
		Name:             orDefault(title, "Unknown Test"),
		Category:         category,
		Description:      description,
		ShortDescription: short,
		ImageURL:         orDefault(p.ACF.String("image_url"), defaultImageURL),
		CenterOffers: []models.CenterOffer{{
			CenterName:     defaultCenter,
			Price:          price,
			MRP:            mrp,
			Rating:         defaultRating,
			ReviewCount:    defaultReviews,
			Accredited:     true,
			TurnaroundTime: reportTime,
			Location:       defaultLocation,
		}},
		Lab: &models.LabDetails{
			Preparation:     orDefault(p.ACF.String("preparation"), "No specific preparation"),
			SampleType:      orDefault(p.ACF.String("sample_type"), "N/A"),
			ReportTime:      reportTime,
			ParametersCount: 1,
			NABL:            true,
		},
	}
}

func mapDoctor(p wpPost) models.CatalogItem {
	fee := int64(defaultPrice)
	if n, ok := p.ACF.Number("fee"); ok {
		fee = int64(math.Round(n))
	}
	about := stripHTML(p.Content.Rendered)
	return models.CatalogItem{
		ID:               strconv.FormatInt(p.ID, 10),
		Kind:             models.KindDoctor,
		Name:             orDefault(stripHTML(p.Title.Rendered), "Unknown Doctor"),
		Category:         "Doctors",
		Description:      about,
		ShortDescription: truncate(about, shortDescriptionSz),
		ImageURL:         orDefault(p.ACF.String("image_url"), defaultImageURL),
		CenterOffers: []models.CenterOffer{{
			CenterName:     orDefault(p.ACF.String("clinic"), defaultCenter),
			Price:          fee,
			MRP:            fee,
			Rating:         defaultRating,
			ReviewCount:    defaultReviews,
			Accredited:     true,
			TurnaroundTime: "Consultation",
			Location:       defaultLocation,
		}},
		Doctor: &models.DoctorDetails{
			Specialty:  p.ACF.String("specialty"),
			Experience: p.ACF.String("experience"),
			About:      about,
		},
	}
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

func stripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

type jwtLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type jwtLoginResponse struct {
	Token           string `json:"token"`
	UserID          any    `json:"user_id"`
	UserEmail       string `json:"user_email"`
	UserDisplayName string `json:"user_display_name"`
	Message         string `json:"message"`
}

// Login exchanges partner credentials for a JWT.
func (w *WordPressClient) Login(ctx context.Context, username, password string) (*models.B2BUser, error) {
	var resp jwtLoginResponse
	err := w.c.DoJSON(ctx, http.MethodPost, "/jwt-auth/v1/token", "", jwtLoginRequest{Username: username, Password: password}, &resp, nil)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		msg := orDefault(stripHTML(resp.Message), "invalid credentials")
		return nil, fmt.Errorf("login failed: %s", msg)
	}
	return &models.B2BUser{
		ID:    userID(resp.UserID),
		Name:  resp.UserDisplayName,
		Email: resp.UserEmail,
		Token: resp.Token,
		Role:  models.RolePartner,
	}, nil
}

func userID(v any) string {
	switch id := v.(type) {
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case string:
		return id
	default:
		return ""
	}
}
