package baser

// BlogPost represents a bc-blog article.
type BlogPost struct {
	ID             int    `json:"id,omitempty"               yaml:"id,omitempty"`
	BlogContentID  int    `json:"blog_content_id,omitempty"  yaml:"blog_content_id,omitempty"`
	No             *int   `json:"no,omitempty"               yaml:"no,omitempty"`
	Name           string `json:"name,omitempty"             yaml:"name,omitempty"`
	Title          string `json:"title,omitempty"            yaml:"title,omitempty"`
	Content        string `json:"content,omitempty"          yaml:"content,omitempty"`
	Detail         string `json:"detail,omitempty"           yaml:"detail,omitempty"`
	BlogCategoryID int    `json:"blog_category_id,omitempty" yaml:"blog_category_id,omitempty"`
	UserID         int    `json:"user_id,omitempty"          yaml:"user_id,omitempty"`
	Status         bool   `json:"status,omitempty"           yaml:"status,omitempty"`
	Posted         string `json:"posted,omitempty"           yaml:"posted,omitempty"`
	EyeCatch       string `json:"eye_catch,omitempty"        yaml:"eye_catch,omitempty"`
	Created        string `json:"created,omitempty"          yaml:"created,omitempty"`
	Modified       string `json:"modified,omitempty"         yaml:"modified,omitempty"`
}

// BlogCategory represents a bc-blog category.
type BlogCategory struct {
	ID            int    `json:"id,omitempty"              yaml:"id,omitempty"`
	BlogContentID int    `json:"blog_content_id,omitempty" yaml:"blog_content_id,omitempty"`
	Name          string `json:"name,omitempty"            yaml:"name,omitempty"`
	Title         string `json:"title,omitempty"           yaml:"title,omitempty"`
	ParentID      *int   `json:"parent_id,omitempty"       yaml:"parent_id,omitempty"`
	Lft           int    `json:"lft,omitempty"             yaml:"lft,omitempty"`
	Rght          int    `json:"rght,omitempty"            yaml:"rght,omitempty"`
	Status        bool   `json:"status,omitempty"          yaml:"status,omitempty"`
	Created       string `json:"created,omitempty"         yaml:"created,omitempty"`
	Modified      string `json:"modified,omitempty"        yaml:"modified,omitempty"`
}

// BlogContent represents the settings of one blog.
type BlogContent struct {
	ID             int                    `json:"id,omitempty"              yaml:"id,omitempty"`
	Description    string                 `json:"description,omitempty"     yaml:"description,omitempty"`
	Template       string                 `json:"template,omitempty"        yaml:"template,omitempty"`
	ListCount      int                    `json:"list_count,omitempty"      yaml:"list_count,omitempty"`
	ListDirection  string                 `json:"list_direction,omitempty"  yaml:"list_direction,omitempty"`
	FeedCount      int                    `json:"feed_count,omitempty"      yaml:"feed_count,omitempty"`
	TagUse         bool                   `json:"tag_use,omitempty"         yaml:"tag_use,omitempty"`
	CommentUse     bool                   `json:"comment_use,omitempty"     yaml:"comment_use,omitempty"`
	CommentApprove bool                   `json:"comment_approve,omitempty" yaml:"comment_approve,omitempty"`
	WidgetArea     int                    `json:"widget_area,omitempty"     yaml:"widget_area,omitempty"`
	EyeCatchSize   string                 `json:"eye_catch_size,omitempty"  yaml:"eye_catch_size,omitempty"`
	UseContent     bool                   `json:"use_content,omitempty"     yaml:"use_content,omitempty"`
	Content        map[string]interface{} `json:"content,omitempty"         yaml:"content,omitempty"`
	Created        string                 `json:"created,omitempty"         yaml:"created,omitempty"`
	Modified       string                 `json:"modified,omitempty"        yaml:"modified,omitempty"`
}

// BlogTag represents a bc-blog tag.
type BlogTag struct {
	ID       int    `json:"id,omitempty"       yaml:"id,omitempty"`
	Name     string `json:"name,omitempty"     yaml:"name,omitempty"`
	Created  string `json:"created,omitempty"  yaml:"created,omitempty"`
	Modified string `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// User represents a baser-core user.
type User struct {
	ID               int    `json:"id,omitempty"                yaml:"id,omitempty"`
	Name             string `json:"name,omitempty"              yaml:"name,omitempty"`
	Password         string `json:"password,omitempty"          yaml:"-"`
	RealName1        string `json:"real_name_1,omitempty"       yaml:"real_name_1,omitempty"`
	RealName2        string `json:"real_name_2,omitempty"       yaml:"real_name_2,omitempty"`
	Email            string `json:"email,omitempty"             yaml:"email,omitempty"`
	Nickname         string `json:"nickname,omitempty"          yaml:"nickname,omitempty"`
	Status           bool   `json:"status,omitempty"            yaml:"status,omitempty"`
	PasswordModified string `json:"password_modified,omitempty" yaml:"password_modified,omitempty"`
	Created          string `json:"created,omitempty"           yaml:"created,omitempty"`
	Modified         string `json:"modified,omitempty"          yaml:"modified,omitempty"`
}

// CustomTable represents a bc-custom-content table definition.
type CustomTable struct {
	ID           int    `json:"id,omitempty"            yaml:"id,omitempty"`
	Type         string `json:"type,omitempty"          yaml:"type,omitempty"`
	Name         string `json:"name,omitempty"          yaml:"name,omitempty"`
	Title        string `json:"title,omitempty"         yaml:"title,omitempty"`
	DisplayField string `json:"display_field,omitempty" yaml:"display_field,omitempty"`
	HasChild     bool   `json:"has_child,omitempty"     yaml:"has_child,omitempty"`
	Created      string `json:"created,omitempty"       yaml:"created,omitempty"`
	Modified     string `json:"modified,omitempty"      yaml:"modified,omitempty"`
}

// CustomField represents a bc-custom-content field definition.
type CustomField struct {
	ID                int    `json:"id,omitempty"                  yaml:"id,omitempty"`
	Name              string `json:"name,omitempty"                yaml:"name,omitempty"`
	Title             string `json:"title,omitempty"               yaml:"title,omitempty"`
	Type              string `json:"type,omitempty"                yaml:"type,omitempty"`
	Status            bool   `json:"status,omitempty"              yaml:"status,omitempty"`
	DefaultValue      string `json:"default_value,omitempty"       yaml:"default_value,omitempty"`
	Validate          string `json:"validate,omitempty"            yaml:"validate,omitempty"`
	Regex             string `json:"regex,omitempty"               yaml:"regex,omitempty"`
	RegexErrorMessage string `json:"regex_error_message,omitempty" yaml:"regex_error_message,omitempty"`
	Counter           bool   `json:"counter,omitempty"             yaml:"counter,omitempty"`
	AutoConvert       string `json:"auto_convert,omitempty"        yaml:"auto_convert,omitempty"`
	Placeholder       string `json:"placeholder,omitempty"         yaml:"placeholder,omitempty"`
	Size              int    `json:"size,omitempty"                yaml:"size,omitempty"`
	Line              int    `json:"line,omitempty"                yaml:"line,omitempty"`
	MaxLength         int    `json:"max_length,omitempty"          yaml:"max_length,omitempty"`
	Source            string `json:"source,omitempty"              yaml:"source,omitempty"`
	Meta              string `json:"meta,omitempty"                yaml:"meta,omitempty"`
	Created           string `json:"created,omitempty"             yaml:"created,omitempty"`
	Modified          string `json:"modified,omitempty"            yaml:"modified,omitempty"`
}

// CustomEntry represents a row of a custom table. Field values defined by the
// table's custom links are kept in Fields.
type CustomEntry struct {
	ID            int    `json:"id,omitempty"              yaml:"id,omitempty"`
	CustomTableID int    `json:"custom_table_id,omitempty" yaml:"custom_table_id,omitempty"`
	Name          string `json:"name,omitempty"            yaml:"name,omitempty"`
	Title         string `json:"title,omitempty"           yaml:"title,omitempty"`
	ParentID      *int   `json:"parent_id,omitempty"       yaml:"parent_id,omitempty"`
	Lft           int    `json:"lft,omitempty"             yaml:"lft,omitempty"`
	Rght          int    `json:"rght,omitempty"            yaml:"rght,omitempty"`
	Level         int    `json:"level,omitempty"           yaml:"level,omitempty"`
	Status        bool   `json:"status,omitempty"          yaml:"status,omitempty"`
	PublishBegin  string `json:"publish_begin,omitempty"   yaml:"publish_begin,omitempty"`
	PublishEnd    string `json:"publish_end,omitempty"     yaml:"publish_end,omitempty"`
	Published     string `json:"published,omitempty"       yaml:"published,omitempty"`
	CreatorID     int    `json:"creator_id,omitempty"      yaml:"creator_id,omitempty"`
	Created       string `json:"created,omitempty"         yaml:"created,omitempty"`
	Modified      string `json:"modified,omitempty"        yaml:"modified,omitempty"`

	Fields Record `json:"-" yaml:"fields,omitempty" mapstructure:"-"`
}

// CustomLink attaches a custom field to a custom table.
type CustomLink struct {
	ID                int     `json:"id,omitempty"                  yaml:"id,omitempty"`
	CustomTableID     int     `json:"custom_table_id,omitempty"     yaml:"custom_table_id,omitempty"`
	CustomFieldID     int     `json:"custom_field_id,omitempty"     yaml:"custom_field_id,omitempty"`
	No                int     `json:"no,omitempty"                  yaml:"no,omitempty"`
	ParentID          *int    `json:"parent_id,omitempty"           yaml:"parent_id,omitempty"`
	Level             int     `json:"level,omitempty"               yaml:"level,omitempty"`
	Lft               int     `json:"lft,omitempty"                 yaml:"lft,omitempty"`
	Rght              int     `json:"rght,omitempty"                yaml:"rght,omitempty"`
	Name              string  `json:"name,omitempty"                yaml:"name,omitempty"`
	Title             string  `json:"title,omitempty"               yaml:"title,omitempty"`
	BeforeHead        *string `json:"before_head,omitempty"         yaml:"before_head,omitempty"`
	AfterHead         *string `json:"after_head,omitempty"          yaml:"after_head,omitempty"`
	Description       *string `json:"description,omitempty"         yaml:"description,omitempty"`
	Attention         *string `json:"attention,omitempty"           yaml:"attention,omitempty"`
	Options           *string `json:"options,omitempty"             yaml:"options,omitempty"`
	Class             *string `json:"class,omitempty"               yaml:"class,omitempty"`
	GroupValid        bool    `json:"group_valid,omitempty"         yaml:"group_valid,omitempty"`
	BeforeLinefeed    bool    `json:"before_linefeed,omitempty"     yaml:"before_linefeed,omitempty"`
	AfterLinefeed     bool    `json:"after_linefeed,omitempty"      yaml:"after_linefeed,omitempty"`
	UseLoop           bool    `json:"use_loop,omitempty"            yaml:"use_loop,omitempty"`
	DisplayAdminList  bool    `json:"display_admin_list,omitempty"  yaml:"display_admin_list,omitempty"`
	DisplayFront      bool    `json:"display_front,omitempty"       yaml:"display_front,omitempty"`
	SearchTargetAdmin bool    `json:"search_target_admin,omitempty" yaml:"search_target_admin,omitempty"`
	SearchTargetFront bool    `json:"search_target_front,omitempty" yaml:"search_target_front,omitempty"`
	UseAPI            bool    `json:"use_api,omitempty"             yaml:"use_api,omitempty"`
	Required          *bool   `json:"required,omitempty"            yaml:"required,omitempty"`
	Status            bool    `json:"status,omitempty"              yaml:"status,omitempty"`
}

// CustomContent represents a content node that publishes a custom table.
type CustomContent struct {
	ID            int                    `json:"id,omitempty"              yaml:"id,omitempty"`
	CustomTableID int                    `json:"custom_table_id,omitempty" yaml:"custom_table_id,omitempty"`
	Description   string                 `json:"description,omitempty"     yaml:"description,omitempty"`
	Template      string                 `json:"template,omitempty"        yaml:"template,omitempty"`
	WidgetArea    int                    `json:"widget_area,omitempty"     yaml:"widget_area,omitempty"`
	ListCount     int                    `json:"list_count,omitempty"      yaml:"list_count,omitempty"`
	ListOrder     string                 `json:"list_order,omitempty"      yaml:"list_order,omitempty"`
	ListDirection string                 `json:"list_direction,omitempty"  yaml:"list_direction,omitempty"`
	Content       map[string]interface{} `json:"content,omitempty"         yaml:"content,omitempty"`
}
