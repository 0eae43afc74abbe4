package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"serwer-zdjec/internal/auth"
	"serwer-zdjec/internal/quota"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8((x + y) % 256), G: uint8(x % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return buf.Bytes()
}

// Funkcja pomocnicza: osobny użytkownik na test, żeby liczniki kwot się nie mieszały
func newTestUserClaims(t *testing.T, username string) *auth.AppClaims {
	t.Helper()
	hashed, err := auth.HashPassword("password")
	require.NoError(t, err)

	var userID int64
	err = testPool.QueryRow(context.Background(),
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		username, hashed).Scan(&userID)
	require.NoError(t, err)

	return &auth.AppClaims{UserID: userID, Username: username}
}

func authed(req *http.Request, claims *auth.AppClaims) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), userContextKey, claims))
}

func withChiParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func multipartImageBody(t *testing.T, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="test.jpg"`}
	header["Content-Type"] = []string{"image/jpeg"}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func uploadTestPhoto(t *testing.T, claims *auth.AppClaims, fields map[string]string) ImageUploadResponse {
	t.Helper()
	body, contentType := multipartImageBody(t, encodeTestJPEG(t, 640, 480), fields)
	req := httptest.NewRequest("POST", "/api/v1/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.UploadImageHandler).ServeHTTP(rr, authed(req, claims))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp ImageUploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestAPI_Register_Success(t *testing.T) {
	// Arrange
	payload := RegisterRequest{Username: "rejestracja_ok", Email: "r@example.com", Password: "password123"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.RegisterHandler).ServeHTTP(rr, req)

	// Assert
	require.Equal(t, http.StatusCreated, rr.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "FREE", resp.Tier)
}

func TestAPI_Register_DuplicateUsername(t *testing.T) {
	// Arrange
	newTestUserClaims(t, "zajety_login")
	payload := RegisterRequest{Username: "zajety_login", Password: "password123"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.RegisterHandler).ServeHTTP(rr, req)

	// Assert
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestAPI_Login_WrongPassword(t *testing.T) {
	// Arrange
	newTestUserClaims(t, "logowanie_zle_haslo")
	payload := LoginRequest{Username: "logowanie_zle_haslo", Password: "not-the-password"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.LoginHandler).ServeHTTP(rr, req)

	// Assert
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAPI_Login_Success(t *testing.T) {
	// Arrange
	newTestUserClaims(t, "logowanie_ok")
	payload := LoginRequest{Username: "logowanie_ok", Password: "password"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.LoginHandler).ServeHTTP(rr, req)

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
}

func TestAPI_UploadImage_Success(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "upload_ok")

	// Act
	resp := uploadTestPhoto(t, claims, map[string]string{"title": "Yosemite"})

	// Assert
	require.NotNil(t, resp.ID)
	require.True(t, resp.Created)
	require.True(t, strings.HasPrefix(resp.URL, publicImagePrefix))
	require.Contains(t, resp.URLThumb, "_thumb")
	require.Contains(t, resp.URLMedium, "_medium")
	require.Greater(t, resp.FileSize, int64(0))
}

func TestAPI_UploadImage_RejectsNonJPEG(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "upload_png")
	body, contentType := multipartImageBody(t, []byte("\x89PNG\r\n\x1a\nnot a jpeg"), nil)
	req := httptest.NewRequest("POST", "/api/v1/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.UploadImageHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "Only JPEG images are accepted")
}

func TestAPI_ListPhotos_Pagination(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "lista_zdjec")
	for i := 0; i < 3; i++ {
		uploadTestPhoto(t, claims, map[string]string{"title": fmt.Sprintf("Photo %d", i)})
	}

	// Act
	req := httptest.NewRequest("GET", "/api/v1/photos?page=1&pageSize=2", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.ListPhotosHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var resp PhotoListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Total)
	require.Len(t, resp.Photos, 2)
	require.Equal(t, 2, resp.TotalPages)
	require.True(t, strings.HasPrefix(resp.Photos[0].ImageURL, publicImagePrefix))
}

func TestAPI_UpdatePhoto_Metadata(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "edycja_zdjecia")
	uploaded := uploadTestPhoto(t, claims, nil)

	title := "After the storm"
	payload := UpdatePhotoRequest{Title: &title}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("PATCH", "/api/v1/photos/x", bytes.NewReader(body))
	req = withChiParam(req, "photoId", fmt.Sprintf("%d", *uploaded.ID))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.UpdatePhotoHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var resp PhotoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Title)
	require.Equal(t, "After the storm", *resp.Title)
}

func TestAPI_DeletePhoto_ReleasesQuota(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "kasowanie_zdjecia")
	uploaded := uploadTestPhoto(t, claims, nil)

	// Act
	req := httptest.NewRequest("DELETE", "/api/v1/photos/x", nil)
	req = withChiParam(req, "photoId", fmt.Sprintf("%d", *uploaded.ID))
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.DeletePhotoHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusNoContent, rr.Code)

	var used int64
	err := testPool.QueryRow(context.Background(),
		`SELECT storage_used_bytes FROM users WHERE id = $1`, claims.UserID).Scan(&used)
	require.NoError(t, err)
	require.Equal(t, int64(0), used)
}

func TestAPI_DeletePhoto_OtherUsersPhotoForbidden(t *testing.T) {
	// Arrange
	owner := newTestUserClaims(t, "wlasciciel_zdjecia")
	intruder := newTestUserClaims(t, "intruz")
	uploaded := uploadTestPhoto(t, owner, nil)

	// Act
	req := httptest.NewRequest("DELETE", "/api/v1/photos/x", nil)
	req = withChiParam(req, "photoId", fmt.Sprintf("%d", *uploaded.ID))
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.DeletePhotoHandler).ServeHTTP(rr, authed(req, intruder))

	// Assert
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAPI_Albums_DeleteKeepsPhotos(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "albumy")

	payload := CreateAlbumRequest{Name: "Tatry"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/albums", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.CreateAlbumHandler).ServeHTTP(rr, authed(req, claims))
	require.Equal(t, http.StatusCreated, rr.Code)

	var album AlbumResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &album))

	uploaded := uploadTestPhoto(t, claims, map[string]string{"albumId": fmt.Sprintf("%d", album.ID)})

	// Act
	req = httptest.NewRequest("DELETE", "/api/v1/albums/x", nil)
	req = withChiParam(req, "albumId", fmt.Sprintf("%d", album.ID))
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.DeleteAlbumHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusNoContent, rr.Code)

	var albumID *int64
	err := testPool.QueryRow(context.Background(),
		`SELECT album_id FROM photos WHERE id = $1`, *uploaded.ID).Scan(&albumID)
	require.NoError(t, err)
	require.Nil(t, albumID, "photo should survive album deletion without an album")
}

func TestAPI_Quota_ReportsUsage(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "stan_kwoty")
	uploaded := uploadTestPhoto(t, claims, nil)

	// Act
	req := httptest.NewRequest("GET", "/api/v1/me/quota", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.GetQuotaHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var info quota.Info
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	require.Equal(t, "FREE", info.Tier)
	require.Equal(t, uploaded.FileSize, info.StorageUsed)
	require.Equal(t, 1, info.PhotoCount)
	require.Equal(t, 20, info.PhotoLimit)
}

func TestAPI_UpdateProfile_PartialPatch(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "profil")
	bio := "Landscape shooter"
	payload := UpdateProfileRequest{Bio: &bio}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("PATCH", "/api/v1/me", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.UpdateProfileHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Bio)
	require.Equal(t, "Landscape shooter", *resp.Bio)
	require.Equal(t, "profil", resp.Username)
}

func TestAPI_CreateOrder_UnknownPostcard(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "zamowienie_blad")
	payload := CreateOrderRequest{PostcardID: 999999, Quantity: 5, RecipientName: "Jan", ShippingAddress: "Warszawa"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.CreateOrderHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "Postcard does not exist")
}

func TestAPI_PostcardAndOrder_Flow(t *testing.T) {
	// Arrange: pocztówka
	claims := newTestUserClaims(t, "zamowienie_ok")
	body, contentType := multipartImageBody(t, encodeTestJPEG(t, 600, 400), map[string]string{
		"textContent":  "Pozdrowienia znad morza",
		"templateType": "postcard",
	})
	req := httptest.NewRequest("POST", "/api/v1/postcards", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.CreatePostcardHandler).ServeHTTP(rr, authed(req, claims))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var postcard PostcardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &postcard))
	require.True(t, strings.HasPrefix(postcard.ImageURL, publicImagePrefix))

	// Act: zamówienie wydruku
	orderPayload := CreateOrderRequest{PostcardID: postcard.ID, Quantity: 10, RecipientName: "Jan Kowalski", ShippingAddress: "ul. Długa 1, Warszawa"}
	orderBody, _ := json.Marshal(orderPayload)
	req = httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(orderBody))
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.CreateOrderHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusCreated, rr.Code)
	var order OrderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &order))
	require.True(t, strings.HasPrefix(order.Reference, "ord_"))
	require.Equal(t, "pending", order.Status)
	require.Equal(t, postcard.ID, order.PostcardID)
}

func TestAPI_DeletePostcard_RefundsOwnerNotCaller(t *testing.T) {
	// Arrange: pocztówka należy do właściciela, kasuje ktoś inny
	owner := newTestUserClaims(t, "pocztowka_wlasciciel")
	caller := newTestUserClaims(t, "pocztowka_kasujacy")

	body, contentType := multipartImageBody(t, encodeTestJPEG(t, 600, 400), map[string]string{
		"textContent": "Czyja kwota, tego zwrot",
	})
	req := httptest.NewRequest("POST", "/api/v1/postcards", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.CreatePostcardHandler).ServeHTTP(rr, authed(req, owner))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var postcard PostcardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &postcard))
	require.Positive(t, storageUsed(t, owner.UserID))

	// Act
	req = httptest.NewRequest("DELETE", "/api/v1/postcards/x", nil)
	req = withChiParam(req, "postcardId", fmt.Sprintf("%d", postcard.ID))
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.DeletePostcardHandler).ServeHTTP(rr, authed(req, caller))

	// Assert: zwrot trafia na konto właściciela, cudze liczniki bez zmian
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, int64(0), storageUsed(t, owner.UserID))
	require.Equal(t, int64(0), storageUsed(t, caller.UserID))
}

func TestAPI_PolishText_NotConfigured(t *testing.T) {
	// Arrange: serwer testowy nie ma klucza AI
	claims := newTestUserClaims(t, "ai_wylaczone")
	payload := PolishTextRequest{Text: "greetings from the see side", TemplateType: "postcard"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/postcards/polish-text", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.PolishTextHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestAPI_ServeImage_TraversalBlocked(t *testing.T) {
	// Arrange
	req := httptest.NewRequest("GET", "/api/v1/images/x", nil)
	req = withChiParam(req, "*", "../../../etc/passwd")
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.ServeImageHandler).ServeHTTP(rr, req)

	// Assert
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_PublicProfile_HidesEmailFromOthers(t *testing.T) {
	// Arrange
	owner := newTestUserClaims(t, "profil_publiczny")
	visitor := newTestUserClaims(t, "odwiedzajacy")
	_, err := testPool.Exec(context.Background(),
		`UPDATE users SET email = 'secret@example.com' WHERE id = $1`, owner.UserID)
	require.NoError(t, err)

	// Act
	req := httptest.NewRequest("GET", "/api/v1/users/x", nil)
	req = withChiParam(req, "username", "profil_publiczny")
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.GetPublicProfileHandler).ServeHTTP(rr, authed(req, visitor))

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "profil_publiczny", resp.Username)
	require.Nil(t, resp.Email)
}

func TestAPI_UserQuota_OwnerOnly(t *testing.T) {
	// Arrange
	newTestUserClaims(t, "kwota_cudza")
	visitor := newTestUserClaims(t, "kwota_podgladacz")

	// Act
	req := httptest.NewRequest("GET", "/api/v1/users/x/quota", nil)
	req = withChiParam(req, "username", "kwota_cudza")
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.GetUserQuotaHandler).ServeHTTP(rr, authed(req, visitor))

	// Assert
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAPI_CreatePostcard_FromStoredImage(t *testing.T) {
	// Arrange: obraz już wgrany, pocztówka tylko go wskazuje
	claims := newTestUserClaims(t, "pocztowka_z_url")
	uploaded := uploadTestPhoto(t, claims, map[string]string{"type": "postcard"})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("imageUrl", uploaded.URL))
	require.NoError(t, writer.WriteField("textContent", "Pozdrowienia"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/postcards", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.CreatePostcardHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp PostcardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, uploaded.URL, resp.ImageURL)
}

func TestAPI_SavePhoto_ThenUpsertKeepsSingleRow(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "upsert_metadanych")
	uploaded := uploadTestPhoto(t, claims, nil)

	title := "First title"
	payload := SavePhotoRequest{ImageURL: uploaded.URL, Title: &title}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/photos", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.SavePhotoHandler).ServeHTTP(rr, authed(req, claims))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Act: drugi zapis pod tym samym adresem nadpisuje, nie dubluje
	title2 := "Second title"
	payload.Title = &title2
	body, _ = json.Marshal(payload)
	req = httptest.NewRequest("POST", "/api/v1/photos", bytes.NewReader(body))
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.SavePhotoHandler).ServeHTTP(rr, authed(req, claims))

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var count int
	err := testPool.QueryRow(context.Background(),
		`SELECT count(*) FROM photos WHERE owner_id = $1`, claims.UserID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	var resp PhotoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Second title", *resp.Title)
}

func storageUsed(t *testing.T, userID int64) int64 {
	t.Helper()
	var used int64
	err := testPool.QueryRow(context.Background(),
		`SELECT storage_used_bytes FROM users WHERE id = $1`, userID).Scan(&used)
	require.NoError(t, err)
	return used
}

func TestAPI_UploadAvatar_CompressedSizeSettlesQuota(t *testing.T) {
	// Arrange
	claims := newTestUserClaims(t, "awatar_rozliczony")
	original := encodeTestJPEG(t, 1000, 500)
	body, contentType := multipartImageBody(t, original, nil)
	req := httptest.NewRequest("POST", "/api/v1/me/avatar", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	// Act
	http.HandlerFunc(testServer.UploadAvatarHandler).ServeHTTP(rr, authed(req, claims))

	// Assert: licznik konta równa się temu, co faktycznie leży na dysku
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp AvatarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	onDisk, err := testServer.blobs.SizeOf(storagePath(resp.AvatarURL))
	require.NoError(t, err)
	require.Less(t, onDisk, int64(len(original)))
	require.Equal(t, onDisk, storageUsed(t, claims.UserID))
}

func TestAPI_UploadAvatar_ReplacementFreesPreviousFile(t *testing.T) {
	// Arrange: konto ma już awatar
	claims := newTestUserClaims(t, "awatar_podmiana")
	body, contentType := multipartImageBody(t, encodeTestJPEG(t, 1000, 500), nil)
	req := httptest.NewRequest("POST", "/api/v1/me/avatar", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.UploadAvatarHandler).ServeHTTP(rr, authed(req, claims))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var first AvatarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))

	// Act: drugi awatar zastępuje pierwszy
	body, contentType = multipartImageBody(t, encodeTestJPEG(t, 800, 800), nil)
	req = httptest.NewRequest("POST", "/api/v1/me/avatar", body)
	req.Header.Set("Content-Type", contentType)
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.UploadAvatarHandler).ServeHTTP(rr, authed(req, claims))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var second AvatarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))

	// Assert: stary plik zniknął, konto płaci tylko za nowy
	_, err := testServer.blobs.SizeOf(storagePath(first.AvatarURL))
	require.Error(t, err)

	onDisk, err := testServer.blobs.SizeOf(storagePath(second.AvatarURL))
	require.NoError(t, err)
	require.Equal(t, onDisk, storageUsed(t, claims.UserID))
}
