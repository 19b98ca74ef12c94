package models

import "time"

// Client - cliente facturable, pertenece a lo sumo a una plataforma
type Client struct {
	ID                   string    `gorm:"primaryKey;size:50" json:"id"`
	Nombre               string    `gorm:"size:150;not null" json:"nombre"`
	Direccion            string    `gorm:"size:255" json:"direccion"`
	Correo               string    `gorm:"size:150" json:"correo"`
	NumeroIdentificacion string    `gorm:"size:50" json:"numero_identificacion"`
	Telefono             string    `gorm:"size:50" json:"telefono"`
	IDPlatform           *string   `gorm:"column:id_platform;size:50;index" json:"id_platform"`
	Platform             *Platform `gorm:"foreignKey:IDPlatform" json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clientes" }
