package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"content-gen-api/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptStylePabloLinkedIn PromptID = "style_pablo_linkedin"
	PromptStyleAitorLinkedIn PromptID = "style_aitor_linkedin"
	PromptStylePabloBlog     PromptID = "style_pablo_blog"
	PromptStyleAitorBlog     PromptID = "style_aitor_blog"
	PromptWebResearch        PromptID = "web_research"
	PromptPDFTransformation  PromptID = "pdf_transformation"
	PromptSuccessCaseSummary PromptID = "success_case_summary"
)

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]string
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]string),
	}
}

// Text 返回内嵌提示词文本
func (r *Registry) Text(id PromptID) (string, error) {
	if r == nil {
		return "", fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if text, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return text, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if text, ok := r.cache[id]; ok {
		return text, nil
	}

	path, err := resolvePromptFile(id)
	if err != nil {
		return "", err
	}
	text, err := readEmbeddedText(path)
	if err != nil {
		return "", err
	}
	r.cache[id] = text
	return text, nil
}

// ApplyStylePreamble 按风格键和模块给系统提示词加作者前缀
// 未定义前缀的风格（如 Default）原样返回
func (r *Registry) ApplyStylePreamble(styleKey string, module entity.ContentModule, systemPrompt string) (string, error) {
	var id PromptID
	switch {
	case styleKey == "Pablo" && module == entity.ContentModuleLinkedIn:
		id = PromptStylePabloLinkedIn
	case styleKey == "Aitor" && module == entity.ContentModuleLinkedIn:
		id = PromptStyleAitorLinkedIn
	case styleKey == "Pablo" && module == entity.ContentModuleBlog:
		id = PromptStylePabloBlog
	case styleKey == "Aitor" && module == entity.ContentModuleBlog:
		id = PromptStyleAitorBlog
	default:
		return systemPrompt, nil
	}

	preamble, err := r.Text(id)
	if err != nil {
		return "", err
	}
	return preamble + "\n\n" + systemPrompt, nil
}

func resolvePromptFile(id PromptID) (string, error) {
	switch id {
	case PromptStylePabloLinkedIn:
		return "templates/style_pablo_linkedin.txt", nil
	case PromptStyleAitorLinkedIn:
		return "templates/style_aitor_linkedin.txt", nil
	case PromptStylePabloBlog:
		return "templates/style_pablo_blog.txt", nil
	case PromptStyleAitorBlog:
		return "templates/style_aitor_blog.txt", nil
	case PromptWebResearch:
		return "templates/web_research.system.txt", nil
	case PromptPDFTransformation:
		return "templates/pdf_transformation.system.txt", nil
	case PromptSuccessCaseSummary:
		return "templates/success_case_summary.system.txt", nil
	default:
		return "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
