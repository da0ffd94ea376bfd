package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
	"google.golang.org/api/option"
)

const modelName = "gemini-2.0-flash-exp"

type geminiClient struct {
	client *genai.Client
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// NewGeminiClient yangi Gemini AI client yaratish
func NewGeminiClient(apiKey string) (repository.AIRepository, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiClient{
		client: client,
		sem:    make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:  350 * time.Millisecond, // minimal interval
	}, nil
}

// newModel instruction bilan model tayyorlash.
// Sotuvchi personasi mahsulotga bog'liq, shuning uchun har so'rovda alohida.
func (g *geminiClient) newModel(instruction string) *genai.GenerativeModel {
	model := g.client.GenerativeModel(modelName)

	// Model konfiguratsiyasi - jonli lekin barqaror javoblar uchun
	model.SetTemperature(0.7)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)

	if instruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(instruction)},
		}
	}

	return model
}

// SellerReply sotuvchi nomidan savdolashish javobini yaratish
func (g *geminiClient) SellerReply(ctx context.Context, message string, history []entity.Turn, instruction string) (string, error) {
	release := g.acquire()
	defer release()

	model := g.newModel(instruction)
	cs := model.StartChat()

	// Oldingi gallarni rol bilan qo'shish
	for _, turn := range history {
		if turn.Text == "" {
			continue
		}
		role := "user"
		if turn.Speaker == entity.SpeakerSeller {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to generate seller reply: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("no response candidates")
	}

	return text, nil
}

// AssistantReply bozor yordamchisi javobini yaratish
func (g *geminiClient) AssistantReply(ctx context.Context, message string, history []entity.Message, instruction string) (string, error) {
	release := g.acquire()
	defer release()

	model := g.newModel(instruction)

	// Chat history ni tayyorlash
	var parts []genai.Part
	for _, msg := range history {
		if msg.Text != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Mijoz: %s", msg.Text)))
		}
		if msg.Response != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Siz: %s", msg.Response)))
		}
	}
	parts = append(parts, genai.Text(message))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("no response candidates")
	}

	return text, nil
}

// DescribeProduct rasmdan mahsulot qoralamasini yaratish
func (g *geminiClient) DescribeProduct(ctx context.Context, image []byte, mimeType string) (*entity.ProductDraft, error) {
	release := g.acquire()
	defer release()

	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	model := g.client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":           {Type: genai.TypeString},
			"estimatedPrice": {Type: genai.TypeString},
			"category":       {Type: genai.TypeString},
			"description":    {Type: genai.TypeString},
		},
		Required: []string{"name", "estimatedPrice", "category", "description"},
	}

	prompt := "Analyze this product image. Provide a JSON response in English with: " +
		"'name', 'estimatedPrice', 'category', and 'description' (short and catchy)."

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(prompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to describe product: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return nil, fmt.Errorf("no response candidates")
	}

	var draft entity.ProductDraft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse product draft: %w", err)
	}

	return &draft, nil
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				result.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return result.String()
}

func (g *geminiClient) acquire() func() {
	g.sem <- struct{}{}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	} else {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
		g.last = now
	}

	return func() {
		<-g.sem
	}
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	return g.client.Close()
}
