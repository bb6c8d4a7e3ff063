package service_test

import (
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var savedAddresses = []models.Address{
	{ID: 1, Name: "Casa, Talatona", Lat: -8.92, Long: 13.18},
	{ID: 2, Name: "Escritório, Baixa de Luanda", Lat: -8.81, Long: 13.23},
}

func setupAddressBook(t *testing.T, user *models.User) (*service.AddressBook, *mocks.AddressRepository, *recordingNotifier) {
	t.Helper()

	repo := new(mocks.AddressRepository)
	notifier := &recordingNotifier{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return service.NewAddressBook(repo, &fakeSession{user: user}, notifier, nil), repo, notifier
}

func TestAddressBookLoad(t *testing.T) {
	t.Run("Requires Session", func(t *testing.T) {
		book, repo, _ := setupAddressBook(t, nil)

		_, err := book.Load(t.Context())

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
		repo.AssertNotCalled(t, "ListAddresses", mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		book, repo, _ := setupAddressBook(t, testUser)
		repo.On("ListAddresses", mock.Anything).Return(savedAddresses, nil).Once()

		addresses, err := book.Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, savedAddresses, addresses)
		assert.Equal(t, savedAddresses, book.List())
	})

	t.Run("Transport Failure Empties And Notifies", func(t *testing.T) {
		book, repo, notifier := setupAddressBook(t, testUser)
		repo.On("ListAddresses", mock.Anything).Return(savedAddresses, nil).Once()
		_, err := book.Load(t.Context())
		require.NoError(t, err)

		repo.On("ListAddresses", mock.Anything).Return(nil, appErrors.TransportError("down")).Once()

		_, err = book.Load(t.Context())

		assert.Error(t, err)
		assert.Empty(t, book.List())
		assert.Len(t, notifier.errors(), 1)
	})
}

func TestAddressBookDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		book, repo, notifier := setupAddressBook(t, testUser)
		repo.On("ListAddresses", mock.Anything).Return(savedAddresses, nil).Once()
		_, err := book.Load(t.Context())
		require.NoError(t, err)

		repo.On("DeleteAddress", mock.Anything, int64(1)).Return(nil).Once()

		require.NoError(t, book.Delete(t.Context(), 1))

		list := book.List()
		require.Len(t, list, 1)
		assert.Equal(t, int64(2), list[0].ID)
		assert.Equal(t, []string{"Address deleted"}, notifier.oks())
	})

	t.Run("Failure Rolls Back", func(t *testing.T) {
		book, repo, notifier := setupAddressBook(t, testUser)
		repo.On("ListAddresses", mock.Anything).Return(savedAddresses, nil).Once()
		_, err := book.Load(t.Context())
		require.NoError(t, err)

		var duringCall []models.Address
		repo.On("DeleteAddress", mock.Anything, int64(1)).Run(func(mock.Arguments) {
			duringCall = book.List()
		}).Return(appErrors.TransportError("down")).Once()

		err = book.Delete(t.Context(), 1)

		assert.Error(t, err)
		assert.Len(t, duringCall, 1, "removed locally while the call is in flight")
		assert.Equal(t, savedAddresses, book.List())
		assert.Equal(t, []string{"Could not delete the address"}, notifier.errors())
	})

	t.Run("Requires Session", func(t *testing.T) {
		book, repo, _ := setupAddressBook(t, nil)

		err := book.Delete(t.Context(), 1)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
		repo.AssertNotCalled(t, "DeleteAddress", mock.Anything, mock.Anything)
	})
}

func TestAddressBookSuggest(t *testing.T) {
	book, repo, _ := setupAddressBook(t, testUser)
	repo.On("ListAddresses", mock.Anything).Return(savedAddresses, nil).Once()
	_, err := book.Load(t.Context())
	require.NoError(t, err)

	assert.Len(t, book.Suggest("talat"), 1)
	assert.Len(t, book.Suggest("LUANDA"), 1)
	assert.Len(t, book.Suggest("a"), 2)
	assert.Empty(t, book.Suggest("  "))
	assert.Empty(t, book.Suggest("benguela"))

	book.OnSessionChange(t.Context(), nil)
	assert.Empty(t, book.Suggest("a"))
}
