package models

// DateLayout is how a post's creation date is rendered and stored.
const DateLayout = "02 January 2006"

type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title    string    `json:"title" gorm:"size:250;uniqueIndex;not null"`
	Subtitle string    `json:"subtitle" gorm:"size:250;not null"`
	Date     string    `json:"date" gorm:"size:250;not null"`
	Body     string    `json:"body" gorm:"type:text;not null"`
	ImgURL   string    `json:"img_url" gorm:"column:img_url;size:250;not null"`
	AuthorID uint      `json:"author_id" gorm:"not null;index"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "blog_posts"
}

// PostRequest carries the authoring form for both create and edit.
type PostRequest struct {
	Title    string `json:"title" form:"title" binding:"required,max=250"`
	Subtitle string `json:"subtitle" form:"subtitle" binding:"required,max=250"`
	ImgURL   string `json:"img_url" form:"img_url" binding:"required,url,max=250"`
	Body     string `json:"body" form:"body" binding:"required"`
}
