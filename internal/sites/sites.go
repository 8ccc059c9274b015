// Package sites holds the per-site extraction profiles. Each profile is
// pure data consumed by the extraction engine; adding a site means adding a
// table here, not a new scraper implementation.
package sites

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pickledex/paddle-scraper/internal/extract"
)

// knownBrands anchors brand detection across all profiles.
var knownBrands = []string{
	"Selkirk Labs", "Selkirk", "Engage", "Joola", "Paddletek", "Gearbox",
	"Franklin", "CRBN", "Diadem", "HEAD", "Gamma", "Players",
	"adidas", "Adidas", "OneShot", "Electrum", "SLK", "Legacy Pro", "Rokne",
	"Babolat", "TMPR", "Pickleball Apes", "ProKennex", "Vulcan",
	"Wilson", "Onix", "Prince", "Rally", "PROLITE", "Pro-Lite",
}

// Galaxy is the profile for pickleballgalaxy.com. Specs live in structured
// "key: value" layout items; the description block backs up core-thickness
// regexes and surface keywords.
func Galaxy() *extract.Profile {
	return &extract.Profile{
		Name:  "Pickleball Galaxy",
		Hosts: []string{"pickleballgalaxy.com", "www.pickleballgalaxy.com"},

		TitleSelectors: []string{
			`span[itemprop="name"]`,
			"h1.page-title",
			".product-title",
			".product-name h1",
			"h1.product_title",
			".product-info h1",
		},
		SpecBlockSelectors:  []string{".o-layout__item"},
		DescriptionSelector: ".prod_description",

		ImageSelectors: []string{
			"img#closeup_image",
			"img#main_image",
			"img.x-product-layout-images__image",
			`img[src*="graphics"]`,
		},
		ImageURLPrefix: "https://www.pickleballgalaxy.com/mm5/",

		KnownBrands: knownBrands,
		ScrubWords:  []string{"Pickleball Galaxy", "Pickleball Central"},

		Fields: []extract.FieldSpec{
			{
				Name: "paddle_length",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"paddle length", "length"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)paddle length[:\s]*(\d+\.?\d*)`)},
				},
			},
			{
				Name: "average_weight",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"weight", "average weight"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)weight[:\s]*([\d.\s-]+(?:ounces|oz))`)},
				},
			},
			{
				Name: "paddle_width",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"paddle width", "width"}},
				},
			},
			{
				Name: "surface",
				Type: extract.FieldEnum,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"surface material", "paddle face", "face material"}},
					{Kind: extract.StrategyKeyword, Keyword: "fiberglass"},
					{Kind: extract.StrategyKeyword, Keyword: "carbon"},
					{Kind: extract.StrategyKeyword, Keyword: "graphite"},
					{Kind: extract.StrategyKeyword, Keyword: "composite"},
				},
			},
			{
				Name: "core",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"core thickness", "core"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)(\d+\.?\d*)\s*mm\s*core`)},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)core thickness[:\s]*(\d+\.?\d*)`)},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)core[:\s]*(\d+\.?\d*)`)},
				},
			},
			{
				Name: "grip_length",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"handle length", "grip length"}},
				},
			},
			{
				Name: "grip_type",
				Type: extract.FieldText,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"factory grip", "grip style", "grip type"}},
				},
			},
			{
				Name: "grip_circumference",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"grip size", "grip circumference"}},
				},
			},
		},

		Listing: extract.Listing{
			URL:         "https://www.pickleballgalaxy.com/all-pickleball-paddles.html",
			OffsetQuery: "CatListingOffset=%d&Offset=%d&Per_Page=%d&Sort_By=disp_order",
			PerPage:     40,
			MaxPages:    10,
			ProductLinkSelectors: []string{
				"a.u-block.x-product-list__link",
				"a.x-product-list__link",
				`a[href*="pickleball-paddle"]`,
				`a[title*="Pickleball Paddle"]`,
			},
			NextPageSelectors: []string{
				"a.next-page",
				"a.action.next",
				`a[title="Next"]`,
				`a[aria-label="Next"]`,
			},
		},
	}
}

// Central is the profile for pickleballcentral.com. The spec tab is one text
// blob, so regex strategies lead and the key:value line scan backs them up.
func Central() *extract.Profile {
	specTab := []string{"#tab-spec .tab-inner"}

	return &extract.Profile{
		Name:  "Pickleball Central",
		Hosts: []string{"pickleballcentral.com", "www.pickleballcentral.com"},

		TitleSelectors: []string{
			"h1.productView-title",
			"h3.card-title a",
			"h1.page-title",
		},
		SpecBlockSelectors:  specTab,
		DescriptionSelector: "div.tab-shortdescription",

		ImageSelectors: []string{
			".card-image img",
			"img.productView-image--default",
		},

		KnownBrands: knownBrands,
		ScrubWords:  []string{"Pickleball Central", "Pickleball Galaxy"},

		Fields: []extract.FieldSpec{
			{
				Name: "average_weight",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Average Weight:\s*([\d.]+\s*(?:ounces|oz))`)},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Weight Range:\s*([\d.\s-]+\s*(?:ounces|oz))`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"average weight", "weight range", "weight"}},
				},
			},
			{
				Name: "grip_circumference",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Grip Circumference:\s*([^"<>\n\r]+)`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"grip circumference", "grip size"}},
				},
			},
			{
				Name: "grip_type",
				Type: extract.FieldText,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Grip Style:\s*([^"<>\n\r]+)`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"grip style", "grip manufacturer", "factory grip"}},
				},
			},
			{
				Name: "grip_length",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Handle Length:\s*([^"<>\n\r]+)`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"handle length", "grip length"}},
				},
			},
			{
				Name: "paddle_length",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Paddle Length:\s*([^"<>\n\r]+)`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"paddle length", "length"}},
				},
			},
			{
				Name: "paddle_width",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Paddle Width:\s*([^"<>\n\r]+)`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"paddle width", "width"}},
				},
			},
			{
				Name: "surface",
				Type: extract.FieldEnum,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Paddle Face:\s*([^"<>\n\r]+)`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"paddle face", "surface material", "face material"}},
					{Kind: extract.StrategyKeyword, Keyword: "fiberglass"},
					{Kind: extract.StrategyKeyword, Keyword: "graphite"},
					{Kind: extract.StrategyKeyword, Keyword: "composite"},
				},
			},
			{
				Name: "core",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`Core Thickness:\s*([^"<>\n\r]+)`)},
					{Kind: extract.StrategySpecTable, Keys: []string{"core thickness", "core material", "core"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)(\d+\.?\d*)\s*mm\s*core`)},
				},
			},
		},

		Listing: extract.Listing{
			URL:      "https://pickleballcentral.com/pickleball-paddles",
			MaxPages: 1,
			ProductLinkSelectors: []string{
				"li.product article.card h3.card-title a",
				"li.product a.card-figure__link",
			},
		},
	}
}

// Generic is the fallback profile for unrecognized sites: broad selector
// lists and every strategy kind for every field. It is also the only profile
// with performance fields, for pages that publish ratings in spec lines.
func Generic() *extract.Profile {
	return &extract.Profile{
		Name: "Generic",

		TitleSelectors: []string{
			`span[itemprop="name"]`,
			"h1.page-title",
			"h1.product-title",
			".product-title",
			"h1",
		},
		SpecBlockSelectors: []string{
			".o-layout__item",
			"#tab-spec .tab-inner",
			".product-specs",
			"table.specs tr",
			"li",
		},

		ImageSelectors: []string{
			`img[itemprop="image"]`,
			"img#main_image",
			".product-image img",
		},

		KnownBrands: knownBrands,
		ScrubWords:  []string{"Pickleball Galaxy", "Pickleball Central"},

		Fields: []extract.FieldSpec{
			{
				Name: "paddle_length",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"paddle length", "length"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)paddle length[:\s]*([\d./ ]+)`)},
					{Kind: extract.StrategyKeyword, Keyword: "length"},
				},
			},
			{
				Name: "average_weight",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"weight", "average weight", "weight range"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)weight[:\s]*([\d.\s-]+(?:ounces|oz))`)},
					{Kind: extract.StrategyKeyword, Keyword: "weight"},
				},
			},
			{
				Name: "paddle_width",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"paddle width", "width"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)paddle width[:\s]*([\d./ ]+)`)},
				},
			},
			{
				Name: "surface",
				Type: extract.FieldEnum,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"surface material", "paddle face", "face material", "surface"}},
					{Kind: extract.StrategyKeyword, Keyword: "fiberglass"},
					{Kind: extract.StrategyKeyword, Keyword: "carbon"},
					{Kind: extract.StrategyKeyword, Keyword: "graphite"},
					{Kind: extract.StrategyKeyword, Keyword: "composite"},
				},
			},
			{
				Name: "core",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"core thickness", "core"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)(\d+\.?\d*)\s*mm\s*core`)},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)core[:\s]*(\d+\.?\d*)`)},
				},
			},
			{
				Name: "grip_length",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"handle length", "grip length"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)handle length[:\s]*([\d./ ]+)`)},
				},
			},
			{
				Name: "grip_type",
				Type: extract.FieldText,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"factory grip", "grip style", "grip type"}},
				},
			},
			{
				Name: "grip_circumference",
				Type: extract.FieldFloat,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"grip size", "grip circumference"}},
					{Kind: extract.StrategyRegex, Pattern: regexp.MustCompile(`(?i)grip circumference[:\s]*([\d./ ]+)`)},
				},
			},
			{
				Name: "shape",
				Type: extract.FieldEnum,
				Strategies: []extract.Strategy{
					{Kind: extract.StrategySpecTable, Keys: []string{"shape", "paddle shape"}},
				},
			},
		},

		PerformanceFields: []extract.FieldSpec{
			{Name: "power", Type: extract.FieldFloat, Strategies: []extract.Strategy{
				{Kind: extract.StrategySpecTable, Keys: []string{"power"}},
			}},
			{Name: "pop", Type: extract.FieldFloat, Strategies: []extract.Strategy{
				{Kind: extract.StrategySpecTable, Keys: []string{"pop"}},
			}},
			{Name: "spin", Type: extract.FieldFloat, Strategies: []extract.Strategy{
				{Kind: extract.StrategySpecTable, Keys: []string{"spin", "spin rpm"}},
			}},
			{Name: "twist_weight", Type: extract.FieldFloat, Strategies: []extract.Strategy{
				{Kind: extract.StrategySpecTable, Keys: []string{"twist weight"}},
			}},
			{Name: "swing_weight", Type: extract.FieldFloat, Strategies: []extract.Strategy{
				{Kind: extract.StrategySpecTable, Keys: []string{"swing weight"}},
			}},
			{Name: "balance_point", Type: extract.FieldFloat, Strategies: []extract.Strategy{
				{Kind: extract.StrategySpecTable, Keys: []string{"balance point"}},
			}},
		},
	}
}

// Registry selects a profile by URL host or by site name.
type Registry struct {
	profiles []*extract.Profile
	generic  *extract.Profile
}

func NewRegistry() *Registry {
	return &Registry{
		profiles: []*extract.Profile{Galaxy(), Central()},
		generic:  Generic(),
	}
}

// ForURL returns the profile whose host matches the URL, or the generic
// profile.
func (r *Registry) ForURL(rawURL string) *extract.Profile {
	u, err := url.Parse(rawURL)
	if err != nil {
		return r.generic
	}
	host := strings.ToLower(u.Host)
	for _, p := range r.profiles {
		for _, h := range p.Hosts {
			if host == h {
				return p
			}
		}
	}
	return r.generic
}

// ForName returns the profile with the given name (case-insensitive), or the
// generic profile when the name is empty or unknown.
func (r *Registry) ForName(name string) (*extract.Profile, bool) {
	if name == "" {
		return r.generic, false
	}
	for _, p := range r.profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	if strings.EqualFold(r.generic.Name, name) {
		return r.generic, true
	}
	return r.generic, false
}

// Names lists the registered profile names, generic last.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles)+1)
	for _, p := range r.profiles {
		names = append(names, p.Name)
	}
	return append(names, r.generic.Name)
}
