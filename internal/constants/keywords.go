package constants

// 各抽取器共享的关键词表
// 匹配时统一转小写后做子串包含判断

// SectionHeaderKeywords 章节标题识别词表
// 一行转小写后包含其中任意一个词，且行长不超过 MaxHeaderLineLength，即视为标题行
var SectionHeaderKeywords = []string{
	"experience", "work experience", "employment", "career",
	"education", "academic background", "qualifications",
	"skills", "technical skills", "competencies",
	"summary", "profile", "objective", "about",
	"projects", "achievements", "certifications",
}

// MaxHeaderLineLength 标题行的最大长度，超过则视为正文
const MaxHeaderLineLength = 50

// SummarySectionKeywords 概要章节的标题词
var SummarySectionKeywords = []string{"summary", "objective", "profile", "about", "overview"}

// SummaryStopKeywords 概要扫描的终止词：遇到这些标题说明概要已结束
var SummaryStopKeywords = []string{"experience", "education", "skills", "work"}

// ExperienceSectionKeywords 工作经历章节的标题词
var ExperienceSectionKeywords = []string{
	"experience", "work", "employment", "career", "position", "role", "job",
}

// EducationKeywords 教育经历识别词，命中任一即认为章节与教育相关
// "education"本身也在列，否则纯"EDUCATION"标题无法命中
var EducationKeywords = []string{
	"education", "bachelor", "master", "phd", "degree", "university",
	"college", "school", "diploma", "certificate",
}

// DegreeKeywords 学位行识别词
var DegreeKeywords = []string{"bachelor", "master", "phd", "diploma"}

// InstitutionKeywords 院校行识别词
var InstitutionKeywords = []string{"university", "college", "school", "institute"}

// SkillCategory 技能分类条目
// 保持为有序切片而不是 map，保证扫描顺序稳定、结果可复现
type SkillCategory struct {
	Name     string
	Keywords []string
}

// SkillCategories 技能分类表，按固定顺序扫描
var SkillCategories = []SkillCategory{
	{
		Name: "programming",
		Keywords: []string{
			"python", "java", "javascript", "c++", "c#", "php", "ruby",
			"go", "rust", "scala", "kotlin",
		},
	},
	{
		Name: "web_development",
		Keywords: []string{
			"html", "css", "react", "angular", "vue", "node.js", "express",
			"django", "flask", "laravel",
		},
	},
	{
		Name: "databases",
		Keywords: []string{
			"mysql", "postgresql", "mongodb", "redis", "elasticsearch",
			"oracle", "sql server", "sqlite",
		},
	},
	{
		Name: "cloud",
		Keywords: []string{
			"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
			"jenkins", "ci/cd",
		},
	},
	{
		Name: "data_science",
		Keywords: []string{
			"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
			"matplotlib", "seaborn", "jupyter",
		},
	},
	{
		Name: "tools",
		Keywords: []string{
			"git", "jira", "confluence", "slack", "trello", "figma",
			"photoshop", "illustrator",
		},
	},
}
