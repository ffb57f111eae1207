package routes

import (
	"context"
	"net/http"

	"pms/constants"
	"pms/controllers"
	middlewares "pms/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) {

	controllers.Init(db, redisCli, m)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	staff := middlewares.AuthMiddleware(constants.RoleSuperAdmin, constants.RoleOwner, constants.RoleStaff)
	manager := middlewares.AuthMiddleware(constants.RoleSuperAdmin, constants.RoleOwner)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())

	v1.POST("/auth/login", controllers.Login)
	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/google", controllers.AuthGoogle)

	v1.POST("/bookings/", staff, controllers.CreateBooking)
	v1.GET("/bookings/", staff, controllers.GetBookings)
	v1.GET("/bookings/:id/", staff, controllers.GetBookingDetail)
	v1.PUT("/bookings/:id/", staff, controllers.UpdateBooking)
	v1.PATCH("/bookings/:id/", staff, controllers.UpdateBooking)
	v1.DELETE("/bookings/:id/", staff, controllers.DeleteBooking)
	v1.POST("/bookings/:id/split/", staff, controllers.SplitBooking)
	v1.GET("/bookings/:id/guests/", staff, controllers.GetBookingGuests)
	// Public check-in lookup by the guest-facing token.
	v1.GET("/bookings/by-uid/:uid/", controllers.GetBookingByUID)

	v1.GET("/guests/:id", staff, controllers.GetGuestDetail)
	v1.PUT("/guests/:id", staff, controllers.UpdateGuest)
	v1.DELETE("/guests/:id", staff, controllers.DeleteGuest)

	v1.POST("/availability/create/", staff, controllers.CreateBlockedPeriod)
	v1.GET("/availability/", staff, controllers.GetBlockedPeriods)
	v1.GET("/availability/:id/detail/", staff, controllers.GetBlockedPeriodDetail)
	v1.PUT("/availability/:id/edit/", staff, controllers.UpdateBlockedPeriod)
	v1.PATCH("/availability/:id/edit/", staff, controllers.UpdateBlockedPeriod)
	v1.DELETE("/availability/:id/", staff, controllers.DeleteBlockedPeriod)

	v1.GET("/rates/calendar/", staff, controllers.GetRatesCalendar)
	v1.POST("/rates/bulk/", manager, controllers.BulkPriceChange)
	v1.POST("/rates/update/", staff, controllers.UpdateSingleRate)

	v1.POST("/structures", manager, controllers.CreateStructure)
	v1.GET("/structures", staff, controllers.GetStructures)
	v1.GET("/structures/:id", staff, controllers.GetStructureDetail)
	v1.PUT("/structures/:id", manager, controllers.UpdateStructure)
	v1.DELETE("/structures/:id", manager, controllers.DeleteStructure)

	v1.POST("/property-types", manager, controllers.CreatePropertyType)
	v1.GET("/property-types", staff, controllers.GetPropertyTypes)
	v1.GET("/property-types/:id", staff, controllers.GetPropertyTypeDetail)
	v1.PUT("/property-types/:id", manager, controllers.UpdatePropertyType)
	v1.DELETE("/property-types/:id", manager, controllers.DeletePropertyType)

	v1.POST("/properties", manager, controllers.CreateProperty)
	v1.GET("/properties", staff, controllers.GetProperties)
	v1.GET("/properties/:id", staff, controllers.GetPropertyDetail)
	v1.PUT("/properties/:id", manager, controllers.UpdateProperty)
	v1.DELETE("/properties/:id", manager, controllers.DeleteProperty)

	v1.POST("/img/multi-upload", manager, func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "properties"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload successful",
			"urls":    urls,
		})
	})
}
