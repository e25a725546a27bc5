// Package entity はmoviesフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Movie はカタログ内の1作品を表します。
// コメントはMovieが排他的に所有するサブエンティティです。
type Movie struct {
	// ID は作品の一意な識別子です。
	ID uint `gorm:"primaryKey" json:"id"`

	// Title は作品タイトルです（最大100文字）。
	Title string `gorm:"size:100;not null" json:"title"`

	// Director は監督名です（最大50文字）。
	Director string `gorm:"size:50;not null" json:"director"`

	// Year は公開年です（1900〜現在年+5）。
	Year int `gorm:"not null" json:"year"`

	// Description は作品の説明文です（最大1000文字）。
	Description string `gorm:"size:1000;not null" json:"description"`

	// Genre はジャンルです（最大30文字）。
	Genre string `gorm:"size:30;not null" json:"genre"`

	// Comments は作品に紐づくコメント列です。追記のみで編集・削除されません。
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"comments"`

	// CreatedAt は作成日時です。
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt は最終更新日時です。
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment は作品へのコメントです。
// 著者IDは認証済みアイデンティティから設定され、クライアント指定値は使用しません。
type Comment struct {
	// ID はコメントの一意な識別子（UUID）です。
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// MovieID は所有するMovieへの外部キーです。
	MovieID uint `gorm:"index;not null" json:"movieId"`

	// UserID はコメント著者のユーザーIDです。
	UserID uint `gorm:"not null" json:"userId"`

	// Text はコメント本文です（トリム済み、非空、最大500文字）。
	Text string `gorm:"size:500;not null" json:"comment"`

	// CreatedAt は投稿日時です。表示順の並び替えは呼び出し側の責務です。
	CreatedAt time.Time `json:"createdAt"`
}
