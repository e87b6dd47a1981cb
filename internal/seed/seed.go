package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/services"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

// File is the YAML fixture layout. Profiles reference users by email so
// fixtures stay readable and order-independent within the file.
type File struct {
	Users    []UserFixture    `yaml:"users"`
	Profiles []ProfileFixture `yaml:"profiles"`
	Articles []ArticleFixture `yaml:"articles"`
}

type UserFixture struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

type ProfileFixture struct {
	UserEmail      string   `yaml:"user_email"`
	TargetExam     string   `yaml:"target_exam"`
	StrongSubjects []string `yaml:"strong_subjects"`
	WeakSubjects   []string `yaml:"weak_subjects"`
}

type ArticleFixture struct {
	Title         string    `yaml:"title"`
	Content       string    `yaml:"content"`
	Summary       string    `yaml:"summary"`
	Category      string    `yaml:"category"`
	Source        string    `yaml:"source"`
	PublishedDate time.Time `yaml:"published_date"`
	Tags          []string  `yaml:"tags"`
	Importance    string    `yaml:"importance"`
	ExamRelevance []string  `yaml:"exam_relevance"`
	ReadTime      int       `yaml:"read_time"`
}

type Loader struct {
	log        *logger.Logger
	articleSvc services.ArticleService
	profileSvc services.ProfileService
	userRepo   repos.UserRepo
}

func NewLoader(log *logger.Logger, articleSvc services.ArticleService, profileSvc services.ProfileService, userRepo repos.UserRepo) *Loader {
	return &Loader{
		log:        log.With("component", "SeedLoader"),
		articleSvc: articleSvc,
		profileSvc: profileSvc,
		userRepo:   userRepo,
	}
}

func (l *Loader) LoadFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	file, err := Parse(raw)
	if err != nil {
		return err
	}
	return l.Load(ctx, file)
}

func Parse(raw []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	for i, u := range file.Users {
		if u.Email == "" {
			return nil, fmt.Errorf("seed user %d: email required", i)
		}
	}
	for i, p := range file.Profiles {
		if p.UserEmail == "" || p.TargetExam == "" {
			return nil, fmt.Errorf("seed profile %d: user_email and target_exam required", i)
		}
	}
	for i, a := range file.Articles {
		if a.Title == "" {
			return nil, fmt.Errorf("seed article %d: title required", i)
		}
	}
	return &file, nil
}

func (l *Loader) Load(ctx context.Context, file *File) error {
	userIDs := map[string]uuid.UUID{}
	for _, u := range file.Users {
		existing, err := l.userRepo.GetByEmail(ctx, nil, u.Email)
		if err != nil {
			return fmt.Errorf("looking up user %s: %w", u.Email, err)
		}
		if existing != nil {
			userIDs[u.Email] = existing.ID
			continue
		}
		created, err := l.userRepo.Create(ctx, nil, []*types.User{{
			ID:        uuid.New(),
			Email:     u.Email,
			Password:  "seeded",
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}})
		if err != nil {
			return fmt.Errorf("creating user %s: %w", u.Email, err)
		}
		userIDs[u.Email] = created[0].ID
	}

	for _, p := range file.Profiles {
		userID, ok := userIDs[p.UserEmail]
		if !ok {
			existing, err := l.userRepo.GetByEmail(ctx, nil, p.UserEmail)
			if err != nil || existing == nil {
				return fmt.Errorf("profile references unknown user %s", p.UserEmail)
			}
			userID = existing.ID
		}
		profile := &types.UserProfile{
			UserID:         userID,
			TargetExam:     p.TargetExam,
			StrongSubjects: marshalList(p.StrongSubjects),
			WeakSubjects:   marshalList(p.WeakSubjects),
			Preferences:    datatypes.JSON([]byte("{}")),
		}
		if _, err := l.profileSvc.Upsert(ctx, profile); err != nil {
			return fmt.Errorf("upserting profile for %s: %w", p.UserEmail, err)
		}
	}

	articles := make([]*types.Article, 0, len(file.Articles))
	for _, a := range file.Articles {
		published := a.PublishedDate
		if published.IsZero() {
			published = time.Now().UTC()
		}
		articles = append(articles, &types.Article{
			ID:            uuid.New(),
			Title:         a.Title,
			Content:       a.Content,
			Summary:       a.Summary,
			Category:      a.Category,
			Source:        a.Source,
			PublishedDate: published,
			Tags:          marshalList(a.Tags),
			Importance:    a.Importance,
			ExamRelevance: marshalList(a.ExamRelevance),
			ReadTime:      a.ReadTime,
		})
	}
	if len(articles) > 0 {
		if _, err := l.articleSvc.Create(ctx, articles); err != nil {
			return fmt.Errorf("creating seed articles: %w", err)
		}
	}

	l.log.Info("seed load complete", "users", len(file.Users), "profiles", len(file.Profiles), "articles", len(file.Articles))
	return nil
}

func marshalList(v []string) datatypes.JSON {
	if v == nil {
		v = []string{}
	}
	// a []string always marshals
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
