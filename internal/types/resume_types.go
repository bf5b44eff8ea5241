package types

// DocumentFormat 表示简历文档的二进制格式
type DocumentFormat string

const (
	// FormatPDF PDF文档
	FormatPDF DocumentFormat = "PDF"
	// FormatDOCX Word文档
	FormatDOCX DocumentFormat = "DOCX"
)

// Section 简历章节结构
// 由章节分割器根据标题行启发式切分得到，顺序与原文一致
type Section struct {
	Title   string `json:"title"`   // 章节标题行（未识别出标题时为空字符串）
	Content string `json:"content"` // 章节正文，已去除空行
}

// PersonalInfo 个人信息
// 所有字段均为可选：只有在文本中找到证据时才填充，绝不猜测
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ExperienceEntry 工作经历条目，对应一个识别出的职位块
type ExperienceEntry struct {
	Title       string `json:"title,omitempty"`       // 职位名称
	Company     string `json:"company,omitempty"`     // 公司名称
	Duration    string `json:"duration,omitempty"`    // 任职时间段原文
	Location    string `json:"location,omitempty"`    // 工作地点
	Description string `json:"description,omitempty"` // 职责描述（多行以换行符连接）
}

// EducationEntry 教育经历条目
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`      // 学位行原文
	Institution string `json:"institution,omitempty"` // 院校行原文
	Year        string `json:"year,omitempty"`        // 毕业年份（4位）
	GPA         string `json:"gpa,omitempty"`
}

// Skill 技能条目
// Category 来自关键词分类表，未命中时为 "General"
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// FileInfo 文件元数据，由调用方提供文件名，核心补充长度信息
type FileInfo struct {
	Filename   string `json:"filename"`
	FileSize   int    `json:"file_size"`   // 原始文件字节数
	TextLength int    `json:"text_length"` // 提取出的文本字符数
}

// ConfidenceScores 各维度的抽取置信度 (0-100)
// 与综合评分相互独立，仅反映证据充分程度
type ConfidenceScores struct {
	Personal   int `json:"personal"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Skills     int `json:"skills"`
}

// ParsedResume 解析结果聚合根
// 每次解析调用都会创建全新的实例，核心在调用之间不保留任何状态
type ParsedResume struct {
	PersonalInfo     PersonalInfo      `json:"personal_info"`
	Summary          string            `json:"summary,omitempty"`
	Experience       []ExperienceEntry `json:"experience"`
	Education        []EducationEntry  `json:"education"`
	Skills           []Skill           `json:"skills"`
	RawText          string            `json:"raw_text"`
	FileInfo         FileInfo          `json:"file_info"`
	OverallScore     int               `json:"overall_score"` // 0-100 综合评分
	ConfidenceScores ConfidenceScores  `json:"confidence_scores"`
}

// EntitySpan 实体识别结果：文本中一段带类型标签的区间
type EntitySpan struct {
	Text  string // 实体原文
	Label string // 实体类型，见下方常量
	Start int    // 在原文中的起始偏移（字节）
}

// 实体类型标签
const (
	// EntityPerson 人名实体
	EntityPerson = "PERSON"
	// EntityLocation 地理位置实体
	EntityLocation = "LOCATION"
)
