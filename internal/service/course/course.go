package course

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"revcast/internal/config"
	"revcast/internal/model/course"
	"revcast/internal/pkg/cache"
	"revcast/internal/pkg/coursetools"
	"revcast/internal/pkg/ffmpeg"
	"revcast/internal/pkg/storage"
	courserepo "revcast/internal/repository/course"
)

// CourseService is the chapter-to-episode production pipeline.
type CourseService interface {
	// CreateChapter registers chapter text for episode production.
	CreateChapter(ctx context.Context, req *CreateChapterRequest) (*course.Chapter, error)

	// GetChapter returns one chapter.
	GetChapter(ctx context.Context, chapterID string) (*course.Chapter, error)

	// ListChapters lists chapters, newest first.
	ListChapters(ctx context.Context, subject string, limit int64) ([]*course.Chapter, error)

	// ExtractConcepts runs concept extraction over the chapter text and
	// stores the resulting concept set.
	ExtractConcepts(ctx context.Context, chapterID string) (*course.ConceptSet, error)

	// GetConcepts returns the latest concept set for a chapter.
	GetConcepts(ctx context.Context, chapterID string) (*course.ConceptSet, error)

	// PlanEpisodes partitions the extracted concepts into a draft
	// episode plan and creates the episode records.
	PlanEpisodes(ctx context.Context, chapterID string) (*course.EpisodePlan, error)

	// GetPlan returns the latest plan for a chapter.
	GetPlan(ctx context.Context, chapterID string) (*course.EpisodePlan, error)

	// ApprovePlan approves a draft plan and releases its episodes for
	// content generation.
	ApprovePlan(ctx context.Context, planID string) error

	// GenerateContentForChapter generates script and question content
	// for every pending episode of the chapter's approved plan.
	GenerateContentForChapter(ctx context.Context, chapterID string) error

	// GenerateContentForEpisode generates content for one episode.
	GenerateContentForEpisode(ctx context.Context, episodeID string) error

	// ApproveContent approves an episode's generated content.
	ApproveContent(ctx context.Context, episodeID string) error

	// GenerateAudioForEpisode synthesizes and validates the episode
	// audio from its approved script.
	GenerateAudioForEpisode(ctx context.Context, episodeID string) (*course.Audio, error)

	// ApproveEpisode gives final approval to an episode.
	ApproveEpisode(ctx context.Context, episodeID string) error

	// RequestRevision sends an episode back to content generation with
	// reviewer feedback.
	RequestRevision(ctx context.Context, episodeID, feedback string) error

	// GetEpisode returns one episode.
	GetEpisode(ctx context.Context, episodeID string) (*course.Episode, error)

	// ListEpisodes returns a chapter's episodes in order.
	ListEpisodes(ctx context.Context, chapterID string) ([]*course.Episode, error)

	// GetScript returns the latest script version for an episode.
	GetScript(ctx context.Context, episodeID string) (*course.Script, error)

	// GetMCQSet returns the latest question set version for an episode.
	GetMCQSet(ctx context.Context, episodeID string) (*course.MCQSet, error)

	// GetAudio returns the latest audio version for an episode.
	GetAudio(ctx context.Context, episodeID string) (*course.Audio, error)

	// GetErrorReport returns the error report of an episode stuck in
	// needs_review, if any.
	GetErrorReport(ctx context.Context, episodeID string) (*course.ErrorReport, error)
}

// CreateChapterRequest carries the chapter registration input.
type CreateChapterRequest struct {
	Title       string
	Subject     string
	GradeBand   string
	Curriculum  string
	Language    string
	ChapterText string
}

// courseService is the pipeline implementation.
type courseService struct {
	chapterRepo    courserepo.ChapterRepository
	conceptSetRepo courserepo.ConceptSetRepository
	planRepo       courserepo.PlanRepository
	episodeRepo    courserepo.EpisodeRepository
	scriptRepo     courserepo.ScriptRepository
	mcqSetRepo     courserepo.MCQSetRepository
	audioRepo      courserepo.AudioRepository

	cache   *cache.RedisCache
	storage storage.Storage

	llm    coursetools.LLMProvider
	tts    coursetools.TTSProvider
	ffmpeg *ffmpeg.Client

	prompts         *coursetools.PromptLibrary
	planner         *coursetools.Planner
	analyzer        *coursetools.TextAnalyzer
	scriptValidator *coursetools.ScriptValidator
	mcqValidator    *coursetools.MCQValidator
	audioValidator  *coursetools.AudioValidator
	orchestrator    *coursetools.RepairOrchestrator

	aiOptions config.AIOptionsConfig
	pipeline  config.PipelineConfig
	ttsVoices map[string]string // speaker name -> provider voice
}

// NewCourseService creates the course pipeline service. The Redis
// cache may be nil; concept extraction then skips caching.
func NewCourseService(
	db *mongo.Database,
	redisCache *cache.RedisCache,
	store storage.Storage,
	llm coursetools.LLMProvider,
	tts coursetools.TTSProvider,
	cfg *config.Config,
) (CourseService, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo database is required")
	}
	if llm == nil {
		return nil, fmt.Errorf("llm provider is required")
	}

	prompts := coursetools.DefaultPromptLibrary()
	scriptValidator := coursetools.NewScriptValidator(
		coursetools.DefaultScriptRubric(cfg.Pipeline.Speaker1Name, cfg.Pipeline.Speaker2Name))
	mcqValidator := coursetools.NewMCQValidator(coursetools.DefaultMCQRubric())
	orchestrator := coursetools.NewRepairOrchestrator(
		coursetools.NewLLMContentGenerator(llm),
		prompts,
		scriptValidator,
		mcqValidator,
		cfg.Pipeline.MaxRepairAttempts,
	)

	return &courseService{
		chapterRepo:     courserepo.NewChapterRepo(db),
		conceptSetRepo:  courserepo.NewConceptSetRepo(db),
		planRepo:        courserepo.NewPlanRepo(db),
		episodeRepo:     courserepo.NewEpisodeRepo(db),
		scriptRepo:      courserepo.NewScriptRepo(db),
		mcqSetRepo:      courserepo.NewMCQSetRepo(db),
		audioRepo:       courserepo.NewAudioRepo(db),
		cache:           redisCache,
		storage:         store,
		llm:             llm,
		tts:             tts,
		ffmpeg:          ffmpeg.NewClient(),
		prompts:         prompts,
		planner:         coursetools.NewPlanner(),
		analyzer:        coursetools.NewTextAnalyzer(),
		scriptValidator: scriptValidator,
		mcqValidator:    mcqValidator,
		audioValidator:  coursetools.NewAudioValidator(coursetools.DefaultAudioRubric()),
		orchestrator:    orchestrator,
		aiOptions:       cfg.AI.Options,
		pipeline:        cfg.Pipeline,
		ttsVoices:       cfg.TTS.Voices,
	}, nil
}
