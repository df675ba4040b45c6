package usecase_chat

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/cinematch/cinematch-server/domain/domain_chat/chat_interface"
	"github.com/cinematch/cinematch-server/domain/domain_chat/chat_models"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxSuggestions  = 5
	contextMovies   = 5
	maxHistoryTurns = 20
)

// 列表行：编号（1. / 1)）或项目符号（- / *）开头
var suggestionLine = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+(.+)$`)

type chatUsecase struct {
	model      chat_interface.ChatModel
	ratingRepo movie_interface.RatingRepository
	metadata   movie_interface.MetadataResolver
	timeout    time.Duration
}

func NewChatUsecase(
	model chat_interface.ChatModel,
	ratingRepo movie_interface.RatingRepository,
	metadata movie_interface.MetadataResolver,
	timeout time.Duration,
) chat_interface.ChatUsecase {
	return &chatUsecase{
		model:      model,
		ratingRepo: ratingRepo,
		metadata:   metadata,
		timeout:    timeout,
	}
}

func (uc *chatUsecase) Chat(ctx context.Context, userID primitive.ObjectID, message string, history []chat_models.ChatMessage) (*chat_models.ChatReply, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// 首轮对话时注入用户观影上下文
	if len(history) == 0 {
		preamble, err := uc.buildPreamble(ctx, userID)
		if err != nil {
			log.Printf("构建对话上下文失败: %v", err)
		} else if preamble != "" {
			history = append(history, chat_models.ChatMessage{Role: chat_models.RoleUser, Text: preamble})
			history = append(history, chat_models.ChatMessage{Role: chat_models.RoleModel, Text: "Got it! I'll keep your taste in mind. What would you like to watch?"})
		}
	}

	history = append(history, chat_models.ChatMessage{Role: chat_models.RoleUser, Text: message})
	history = trimHistory(history)

	reply, err := uc.model.Generate(ctx, history)
	if err != nil {
		return nil, err
	}

	history = append(history, chat_models.ChatMessage{Role: chat_models.RoleModel, Text: reply})

	return &chat_models.ChatReply{
		Message:     reply,
		Suggestions: uc.extractSuggestions(ctx, reply),
		History:     history,
	}, nil
}

// buildPreamble 把用户收藏摘要拼成开场提示：最高分的5部影片、偏好类型与平均分
func (uc *chatUsecase) buildPreamble(ctx context.Context, userID primitive.ObjectID) (string, error) {
	ratings, err := uc.ratingRepo.GetByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	rated := ratings[:0:0]
	for _, r := range ratings {
		if r.Rated() {
			rated = append(rated, r)
		}
	}
	if len(rated) == 0 {
		return "You are a friendly movie recommendation assistant. The user has not rated any movies yet, so ask about their taste before recommending.", nil
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].Rating > *rated[j].Rating
	})

	var sb strings.Builder
	sb.WriteString("You are a friendly movie recommendation assistant. Here is the user's movie collection:\n")

	total := 0.0
	genreCounts := make(map[string]int)
	for i, r := range rated {
		total += *r.Rating
		for _, g := range r.Genres {
			genreCounts[g]++
		}
		if i < contextMovies {
			sb.WriteString(fmt.Sprintf("- %s (%d), rated %.1f/10\n", r.Title, r.Year, *r.Rating))
		}
	}

	genres := make([]string, 0, len(genreCounts))
	for g := range genreCounts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if genreCounts[genres[i]] != genreCounts[genres[j]] {
			return genreCounts[genres[i]] > genreCounts[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) > 3 {
		genres = genres[:3]
	}

	sb.WriteString(fmt.Sprintf("Favorite genres: %s. Average rating: %.1f/10.\n", strings.Join(genres, ", "), total/float64(len(rated))))
	sb.WriteString("When recommending movies, list each title on its own line prefixed with a number, like \"1. Title - reason\".")

	return sb.String(), nil
}

// extractSuggestions 从回复的列表行里提取片名并查元数据，最多5部
// 找不到的片名静默跳过
func (uc *chatUsecase) extractSuggestions(ctx context.Context, reply string) []movie_models.MovieDetails {
	suggestions := make([]movie_models.MovieDetails, 0, maxSuggestions)
	seen := make(map[int]bool)

	for _, line := range strings.Split(reply, "\n") {
		m := suggestionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		title := titleOf(m[1])
		if title == "" {
			continue
		}

		matches, err := uc.metadata.Search(ctx, title, 0)
		if err != nil || len(matches) == 0 {
			continue
		}
		if seen[matches[0].TmdbID] {
			continue
		}
		seen[matches[0].TmdbID] = true

		suggestions = append(suggestions, matches[0])
		if len(suggestions) >= maxSuggestions {
			break
		}
	}

	return suggestions
}

// titleOf 去掉列表行里片名后面的说明部分与包裹符号
func titleOf(line string) string {
	title := line
	for _, sep := range []string{" - ", " – ", ": "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	title = strings.Trim(title, " *\"'")

	// 去掉尾部年份括注，如 (1999)
	if idx := strings.LastIndex(title, "("); idx > 0 {
		title = strings.TrimSpace(title[:idx])
	}

	return strings.Trim(title, " *\"'")
}

func trimHistory(history []chat_models.ChatMessage) []chat_models.ChatMessage {
	if len(history) <= maxHistoryTurns {
		return history
	}
	// 保留开头两条上下文消息，其余取最近的
	kept := make([]chat_models.ChatMessage, 0, maxHistoryTurns)
	kept = append(kept, history[:2]...)
	kept = append(kept, history[len(history)-(maxHistoryTurns-2):]...)
	return kept
}
