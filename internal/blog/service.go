package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
)

// Post is one published blog entry, the output shape of the Blogger export.
type Post struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Published time.Time `json:"published"`
	Excerpt   string    `json:"excerpt,omitempty"`
	BodyHTML  string    `json:"bodyHtml"`
}

// Service serves the static blog content.
type Service interface {
	List(ctx context.Context) []Post
	Get(ctx context.Context, slug string) (*Post, error)
}

type service struct {
	posts  []Post
	bySlug map[string]*Post
}

// NewService loads every *.json post from the content directory, newest
// first. A missing directory yields an empty blog, not an error.
func NewService(contentDir string, logg *logger.Logger) (Service, error) {
	entries, err := os.ReadDir(contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			if logg != nil {
				ctx := logg.WithField(context.Background(), "content_dir", contentDir)
				logg.Warn(ctx, "blog content directory missing, serving empty blog")
			}
			return &service{bySlug: map[string]*Post{}}, nil
		}
		return nil, fmt.Errorf("reading blog content dir: %w", err)
	}

	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(contentDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading blog post %s: %w", entry.Name(), err)
		}
		var post Post
		if err := json.Unmarshal(raw, &post); err != nil {
			// Skip malformed exports rather than taking the site down.
			if logg != nil {
				ctx := logg.WithField(context.Background(), "post_file", entry.Name())
				logg.Warn(ctx, "skipping unparseable blog post")
			}
			continue
		}
		if post.Slug == "" {
			post.Slug = strings.TrimSuffix(entry.Name(), ".json")
		}
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Published.After(posts[j].Published)
	})

	bySlug := make(map[string]*Post, len(posts))
	for i := range posts {
		bySlug[posts[i].Slug] = &posts[i]
	}

	return &service{posts: posts, bySlug: bySlug}, nil
}

func (s *service) List(_ context.Context) []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *service) Get(_ context.Context, slug string) (*Post, error) {
	post, ok := s.bySlug[slug]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	return post, nil
}
