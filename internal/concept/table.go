package concept

// curated maps structural selectors to stable concept ids. Cousin entries
// collapse the parent's sibling age: only side, branch sex, child sex and
// the cousin's age relative to the user matter.
var curated = map[string]string{
	"f,ob":     "paternal_uncle_elder",
	"f,lb":     "paternal_uncle_younger",
	"f,xb":     "paternal_uncle_unspecified",
	"f,ob,w":   "paternal_uncle_elder_spouse",
	"f,lb,w":   "paternal_uncle_younger_spouse",
	"f,xb,w":   "paternal_uncle_spouse_unspecified",
	"f,os":     "paternal_aunt_elder",
	"f,ls":     "paternal_aunt_younger",
	"f,xs":     "paternal_aunt_unspecified",
	"f,os,h":   "paternal_aunt_elder_spouse",
	"f,ls,h":   "paternal_aunt_younger_spouse",
	"f,xs,h":   "paternal_aunt_spouse_unspecified",
	"m,xb":     "maternal_uncle",
	"m,xb,w":   "maternal_uncle_spouse",
	"m,xs":     "maternal_aunt",
	"m,xs,h":   "maternal_aunt_spouse",
	"f,f":      "paternal_grandfather",
	"f,m":      "paternal_grandmother",
	"m,f":      "maternal_grandfather",
	"m,m":      "maternal_grandmother",
	"f,xb,s&o": "cousin_paternal_male_elder",
	"f,xb,s&l": "cousin_paternal_male_younger",
	"f,xb,d&o": "cousin_paternal_female_elder",
	"f,xb,d&l": "cousin_paternal_female_younger",
	"f,ob,s&o": "cousin_paternal_male_elder",
	"f,lb,s&o": "cousin_paternal_male_elder",
	"f,ob,s&l": "cousin_paternal_male_younger",
	"f,lb,s&l": "cousin_paternal_male_younger",
	"f,ob,d&o": "cousin_paternal_female_elder",
	"f,lb,d&o": "cousin_paternal_female_elder",
	"f,ob,d&l": "cousin_paternal_female_younger",
	"f,lb,d&l": "cousin_paternal_female_younger",
	"f,ob,s":   "cousin_paternal_male_unspecified",
	"f,lb,s":   "cousin_paternal_male_unspecified",
	"f,xb,s":   "cousin_paternal_male_unspecified",
	"f,ob,d":   "cousin_paternal_female_unspecified",
	"f,lb,d":   "cousin_paternal_female_unspecified",
	"f,xb,d":   "cousin_paternal_female_unspecified",
	"f,xs,s&o": "cousin_auntline_male_elder",
	"f,xs,s&l": "cousin_auntline_male_younger",
	"f,xs,d&o": "cousin_auntline_female_elder",
	"f,xs,d&l": "cousin_auntline_female_younger",
	"f,os,s&o": "cousin_auntline_male_elder",
	"f,ls,s&o": "cousin_auntline_male_elder",
	"f,os,s&l": "cousin_auntline_male_younger",
	"f,ls,s&l": "cousin_auntline_male_younger",
	"f,os,d&o": "cousin_auntline_female_elder",
	"f,ls,d&o": "cousin_auntline_female_elder",
	"f,os,d&l": "cousin_auntline_female_younger",
	"f,ls,d&l": "cousin_auntline_female_younger",
	"f,os,s":   "cousin_auntline_male_unspecified",
	"f,ls,s":   "cousin_auntline_male_unspecified",
	"f,xs,s":   "cousin_auntline_male_unspecified",
	"f,os,d":   "cousin_auntline_female_unspecified",
	"f,ls,d":   "cousin_auntline_female_unspecified",
	"f,xs,d":   "cousin_auntline_female_unspecified",
	"m,xb,s&o": "cousin_maternal_male_elder",
	"m,xb,s&l": "cousin_maternal_male_younger",
	"m,xb,d&o": "cousin_maternal_female_elder",
	"m,xb,d&l": "cousin_maternal_female_younger",
	"m,ob,s&o": "cousin_maternal_male_elder",
	"m,lb,s&o": "cousin_maternal_male_elder",
	"m,ob,s&l": "cousin_maternal_male_younger",
	"m,lb,s&l": "cousin_maternal_male_younger",
	"m,ob,d&o": "cousin_maternal_female_elder",
	"m,lb,d&o": "cousin_maternal_female_elder",
	"m,ob,d&l": "cousin_maternal_female_younger",
	"m,lb,d&l": "cousin_maternal_female_younger",
	"m,ob,s":   "cousin_maternal_male_unspecified",
	"m,lb,s":   "cousin_maternal_male_unspecified",
	"m,xb,s":   "cousin_maternal_male_unspecified",
	"m,ob,d":   "cousin_maternal_female_unspecified",
	"m,lb,d":   "cousin_maternal_female_unspecified",
	"m,xb,d":   "cousin_maternal_female_unspecified",
	"m,xs,s&o": "cousin_maternal_auntline_male_elder",
	"m,xs,s&l": "cousin_maternal_auntline_male_younger",
	"m,xs,d&o": "cousin_maternal_auntline_female_elder",
	"m,xs,d&l": "cousin_maternal_auntline_female_younger",
	"m,os,s&o": "cousin_maternal_auntline_male_elder",
	"m,ls,s&o": "cousin_maternal_auntline_male_elder",
	"m,os,s&l": "cousin_maternal_auntline_male_younger",
	"m,ls,s&l": "cousin_maternal_auntline_male_younger",
	"m,os,d&o": "cousin_maternal_auntline_female_elder",
	"m,ls,d&o": "cousin_maternal_auntline_female_elder",
	"m,os,d&l": "cousin_maternal_auntline_female_younger",
	"m,ls,d&l": "cousin_maternal_auntline_female_younger",
	"m,os,s":   "cousin_maternal_auntline_male_unspecified",
	"m,ls,s":   "cousin_maternal_auntline_male_unspecified",
	"m,xs,s":   "cousin_maternal_auntline_male_unspecified",
	"m,os,d":   "cousin_maternal_auntline_female_unspecified",
	"m,ls,d":   "cousin_maternal_auntline_female_unspecified",
	"m,xs,d":   "cousin_maternal_auntline_female_unspecified",
}

// Lookup returns the curated concept id for a selector
func Lookup(selector string) (string, bool) {
	id, ok := curated[selector]
	return id, ok
}

// Curated returns a copy of the curated selector table
func Curated() map[string]string {
	out := make(map[string]string, len(curated))
	for k, v := range curated {
		out[k] = v
	}
	return out
}
