// Package catalog provides the embedded flow definitions and their loader.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
)

//go:embed flows/*.yaml
var flowsFS embed.FS

const flowsDir = "flows"

// flowDTO is the data transfer object for one flow file.
type flowDTO struct {
	ID              string     `yaml:"id"`
	Order           int        `yaml:"order"`
	Title           string     `yaml:"title"`
	Summary         string     `yaml:"summary"`
	Category        string     `yaml:"category"`
	Native          bool       `yaml:"native"`
	ComingSoon      bool       `yaml:"coming_soon"`
	Help            linkDTO    `yaml:"help"`
	Fields          []fieldDTO `yaml:"fields"`
	Steps           []stepDTO  `yaml:"steps"`
	Capabilities    []string   `yaml:"capabilities"`
	Troubleshooting []string   `yaml:"troubleshooting"`
	Resources       []linkDTO  `yaml:"resources"`
}

type linkDTO struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type fieldDTO struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Example  string `yaml:"example"`
	Fallback string `yaml:"fallback"`
	Help     string `yaml:"help"`
	Secret   bool   `yaml:"secret"`
}

type stepDTO struct {
	Number      int          `yaml:"number"`
	Title       string       `yaml:"title"`
	Platform    string       `yaml:"platform"`
	Description string       `yaml:"description"`
	Body        string       `yaml:"body"`
	Optional    bool         `yaml:"optional"`
	Fields      []string     `yaml:"fields"`
	Snippets    []snippetDTO `yaml:"snippets"`
	Links       []linkDTO    `yaml:"links"`
}

type snippetDTO struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Language string   `yaml:"language"`
	Template string   `yaml:"template"`
	OS       []string `yaml:"os"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *guide.Catalog
	errDefault     error
)

// Default returns the embedded catalog. It is parsed once per process.
func Default() (*guide.Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, errDefault = LoadFS(flowsFS, flowsDir)
	})
	return defaultCatalog, errDefault
}

// LoadFS parses every *.yaml file in dir and validates the result.
// Flows are ordered by their order key, then by id.
func LoadFS(fsys fs.FS, dir string) (*guide.Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, guide.NewUserError(guide.ErrCodeCatalogParse, "failed to read flow directory").
			WithContext(dir).
			WithUnderlying(err)
	}

	type ordered struct {
		order int
		flow  guide.Flow
	}
	var flows []ordered
	errs := guide.NewErrorList()

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs.Add(guide.NewUserError(guide.ErrCodeCatalogParse, "failed to read flow file").
				WithContext(name).
				WithUnderlying(err))
			continue
		}
		flow, order, err := parse(name, data)
		if err != nil {
			addErr(errs, err)
			continue
		}
		flows = append(flows, ordered{order: order, flow: flow})
	}

	if errs.HasErrors() {
		return nil, errs
	}

	sort.SliceStable(flows, func(i, j int) bool {
		if flows[i].order != flows[j].order {
			return flows[i].order < flows[j].order
		}
		return flows[i].flow.ID < flows[j].flow.ID
	})

	out := make([]guide.Flow, len(flows))
	for i, f := range flows {
		out[i] = f.flow
	}
	return guide.NewCatalog(out...)
}

// Parse decodes a single flow document. name is used in error messages.
func Parse(name string, data []byte) (guide.Flow, error) {
	flow, _, err := parse(name, data)
	return flow, err
}

func parse(name string, data []byte) (guide.Flow, int, error) {
	var dto flowDTO
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return guide.Flow{}, 0, guide.NewUserError(guide.ErrCodeCatalogParse, "failed to parse flow file").
			WithContext(name).
			WithSuggestion("Check the YAML syntax and field names.").
			WithUnderlying(err)
	}

	flow, err := toFlow(dto)
	if err != nil {
		return guide.Flow{}, 0, err
	}
	return flow, dto.Order, nil
}

func toFlow(dto flowDTO) (guide.Flow, error) {
	flow := guide.Flow{
		ID:              dto.ID,
		Title:           dto.Title,
		Summary:         dto.Summary,
		Category:        dto.Category,
		Native:          dto.Native,
		ComingSoon:      dto.ComingSoon,
		Help:            guide.Link(dto.Help),
		Capabilities:    dto.Capabilities,
		Troubleshooting: dto.Troubleshooting,
	}

	for _, f := range dto.Fields {
		flow.Fields = append(flow.Fields, guide.Field(f))
	}
	for _, l := range dto.Resources {
		flow.Resources = append(flow.Resources, guide.Link(l))
	}

	for _, s := range dto.Steps {
		step := guide.Step{
			Number:      s.Number,
			Title:       s.Title,
			Platform:    guide.Platform(strings.ToLower(s.Platform)),
			Description: s.Description,
			Body:        strings.TrimRight(s.Body, "\n"),
			Optional:    s.Optional,
			Fields:      s.Fields,
		}
		for _, l := range s.Links {
			step.Links = append(step.Links, guide.Link(l))
		}
		for _, sn := range s.Snippets {
			snippet := guide.Snippet{
				ID:       sn.ID,
				Title:    sn.Title,
				Language: sn.Language,
				Template: sn.Template,
			}
			if snippet.Language == "" {
				snippet.Language = "bash"
			}
			for _, raw := range sn.OS {
				o, err := platform.ParseOS(raw)
				if err != nil {
					return guide.Flow{}, guide.NewOSInvalidError(raw, err).
						WithContext(fmt.Sprintf("%s snippet %s", dto.ID, sn.ID))
				}
				snippet.OS = append(snippet.OS, o)
			}
			step.Snippets = append(step.Snippets, snippet)
		}
		flow.Steps = append(flow.Steps, step)
	}

	if err := flow.Validate(); err != nil {
		return guide.Flow{}, err
	}
	return flow, nil
}

func addErr(errs *guide.ErrorList, err error) {
	var list *guide.ErrorList
	if errors.As(err, &list) {
		errs.Merge(list)
		return
	}
	if ue := guide.GetUserError(err); ue != nil {
		errs.Add(ue)
		return
	}
	errs.Add(guide.NewUserError(guide.ErrCodeCatalogParse, err.Error()).WithUnderlying(err))
}
