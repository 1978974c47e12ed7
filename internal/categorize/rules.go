package categorize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRules is the built-in rule table for the home & garden catalog.
// Paths must correspond to the seeded category tree; a path without a seeded
// node still categorizes, it just resolves to a null category id.
func DefaultRules() []Rule {
	return []Rule{
		// home > kitchen
		{Path: []string{"home", "kitchen", "cookware"}, Weight: 10,
			Keywords: []string{"тиган", "тенджер", "касерол", "съд за готвене", "cookware", "pan", "pot", "wok"}},
		{Path: []string{"home", "kitchen", "bakeware"}, Weight: 8,
			Keywords: []string{"форма за печене", "тава", "кекс", "мъфин", "bakeware", "baking tray", "muffin", "cake pan"}},
		{Path: []string{"home", "kitchen", "kitchen-tools"}, Weight: 7,
			Keywords: []string{"шпатула", "черпак", "ренде", "белачка", "отварачка", "kitchen tool", "grater", "peeler", "ladle"}},
		{Path: []string{"home", "kitchen", "knives"}, Weight: 9,
			Keywords: []string{"нож", "ножица кухненска", "дъска за рязане", "knife", "cutting board", "chef knife"}},
		{Path: []string{"home", "kitchen", "food-storage"}, Weight: 8,
			Keywords: []string{"кутия", "буркан", "контейнер", "food storage", "container", "jar", "lunch box"}},
		{Path: []string{"home", "kitchen", "small-appliances"}, Weight: 10,
			Keywords: []string{"блендер", "миксер", "air fryer", "фритюрник", "тостер", "кана", "kettle", "coffee machine", "кафемашина"}},
		{Path: []string{"home", "kitchen", "tableware"}, Weight: 6,
			Keywords: []string{"чини", "купа", "чаша", "порцелан", "tableware", "plate", "bowl", "cup"}},
		{Path: []string{"home", "kitchen", "drinkware"}, Weight: 6,
			Keywords: []string{"бутил", "термос", "шише", "drinkware", "bottle", "thermos", "tumbler"}},

		// home > cleaning
		{Path: []string{"home", "cleaning", "mops"}, Weight: 7,
			Keywords: []string{"моп", "метла", "broom", "mop"}},
		{Path: []string{"home", "cleaning", "cleaning-tools"}, Weight: 6,
			Keywords: []string{"четка", "squeegee", "парцал", "почистващ инструмент", "cleaning tool"}},
		{Path: []string{"home", "cleaning", "sponges"}, Weight: 6,
			Keywords: []string{"гъба", "микрофибър", "кърпа", "sponge", "microfiber", "cloth"}},
		{Path: []string{"home", "cleaning", "buckets"}, Weight: 6,
			Keywords: []string{"кофа", "леген", "bucket", "tub"}},

		// home > storage
		{Path: []string{"home", "storage", "boxes"}, Weight: 9,
			Keywords: []string{"органайзер", "кутия", "за съхран", "storage box", "organizer", "container"}},
		{Path: []string{"home", "storage", "drawer-organizers"}, Weight: 8,
			Keywords: []string{"органайзер за чекмедже", "drawer organizer", "divider"}},
		{Path: []string{"home", "storage", "wardrobe"}, Weight: 7,
			Keywords: []string{"гардероб", "за дрехи", "калъф", "wardrobe organizer", "closet"}},
		{Path: []string{"home", "storage", "shelving"}, Weight: 9,
			Keywords: []string{"рафт", "етажерка", "стелаж", "shelf", "rack", "shelving"}},
		{Path: []string{"home", "storage", "hangers"}, Weight: 7,
			Keywords: []string{"закачалк", "hanger"}},

		// home > decor / lighting / bathroom / bedroom / improvement
		{Path: []string{"home", "decor", "wall-decor"}, Weight: 7,
			Keywords: []string{"картина", "постер", "рамка", "wall decor", "poster", "frame"}},
		{Path: []string{"home", "decor", "mirrors"}, Weight: 8,
			Keywords: []string{"огледало", "mirror"}},
		{Path: []string{"home", "decor", "candles"}, Weight: 6,
			Keywords: []string{"свещ", "candle"}},
		{Path: []string{"home", "decor", "clocks"}, Weight: 6,
			Keywords: []string{"часовник", "clock"}},
		{Path: []string{"home", "lighting", "led"}, Weight: 8,
			Keywords: []string{"led", "лента", "led strip", "светлинна лента"}},
		{Path: []string{"home", "bathroom", "bathroom-storage"}, Weight: 7,
			Keywords: []string{"баня", "душ", "шампоан", "bathroom", "shower", "soap dispenser"}},
		{Path: []string{"home", "bedroom", "bedding"}, Weight: 8,
			Keywords: []string{"спално", "чаршаф", "плик", "bedding", "bedsheet", "duvet cover"}},
		{Path: []string{"home", "improvement", "hardware"}, Weight: 8,
			Keywords: []string{"винт", "дюбел", "панта", "скоба", "hardware", "screw", "anchor", "hinge"}},

		// garden
		{Path: []string{"garden", "plants", "seeds"}, Weight: 10,
			Keywords: []string{"семена", "seed", "seeds"}},
		{Path: []string{"garden", "plants", "soil"}, Weight: 9,
			Keywords: []string{"тор", "почва", "пръст", "soil", "fertilizer", "compost"}},
		{Path: []string{"garden", "plants", "pots"}, Weight: 9,
			Keywords: []string{"саксия", "кашпа", "planter", "pot", "pots"}},
		{Path: []string{"garden", "irrigation", "hoses"}, Weight: 10,
			Keywords: []string{"маркуч", "hose", "hoses"}},
		{Path: []string{"garden", "irrigation", "sprinklers"}, Weight: 10,
			Keywords: []string{"разпръсквач", "sprinkler"}},
		{Path: []string{"garden", "irrigation", "drip"}, Weight: 10,
			Keywords: []string{"капково", "drip irrigation", "drip"}},
		{Path: []string{"garden", "tools", "hand-tools"}, Weight: 9,
			Keywords: []string{"лопат", "гребл", "ножиц", "градински инструмент", "trowel", "rake", "pruner"}},
		{Path: []string{"garden", "tools", "power-tools"}, Weight: 10,
			Keywords: []string{"косач", "тример", "резач", "chainsaw", "trimmer", "mower"}},
		{Path: []string{"garden", "bbq", "grills"}, Weight: 10,
			Keywords: []string{"скара", "грил", "барбекю", "grill", "bbq"}},
		{Path: []string{"garden", "garden-decor", "solar"}, Weight: 9,
			Keywords: []string{"солар", "solar light", "solar"}},
	}
}

// LoadRules reads a YAML rule file; an empty path returns the defaults.
// Unlike aliases, rules do not merge: a file replaces the whole table so
// operators control rule precedence explicitly.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	for i, r := range rules {
		if len(r.Path) == 0 {
			return nil, fmt.Errorf("rule %d has an empty path", i)
		}
	}
	return rules, nil
}
